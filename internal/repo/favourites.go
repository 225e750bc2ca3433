package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
)

func (r *GormRepo) GetFavouriteItems(ctx context.Context, userID uint) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Joins("JOIN favourites ON favourites.item_id = items.id").
		Where("favourites.user_id = ?", userID).
		Order("items.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetFavourite(ctx context.Context, userID, itemID uint) (*models.Favourite, error) {
	var fav models.Favourite
	if err := r.DB.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).First(&fav).Error; err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *GormRepo) CreateFavourite(ctx context.Context, fav *models.Favourite) error {
	return r.DB.WithContext(ctx).Create(fav).Error
}

func (r *GormRepo) DeleteFavourite(ctx context.Context, userID, itemID uint) error {
	res := r.DB.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID).Delete(&models.Favourite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
