package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
)

func (r *GormRepo) GetItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByName matches case-insensitively; the unique index on name stays the
// backstop for concurrent writers.
func (r *GormRepo) GetItemByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) GetItemsByCategory(ctx context.Context, categoryID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) SaveItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteItem(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountItemsInCategory(ctx context.Context, categoryID uint) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Item{}).Where("category_id = ?", categoryID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
