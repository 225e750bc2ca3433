package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
)

type FavouriteService struct {
	Repo *repo.GormRepo
}

func (s *FavouriteService) ListFavourites(ctx context.Context, userID uint) ([]models.Item, error) {
	return s.Repo.GetFavouriteItems(ctx, userID)
}

func (s *FavouriteService) AddFavourite(ctx context.Context, userID, itemID uint) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.GetFavourite(ctx, userID, itemID); err == nil {
		return nil, ErrAlreadyFavourite
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav := models.Favourite{UserID: userID, ItemID: itemID}
	if err := s.Repo.CreateFavourite(ctx, &fav); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavourite
		}
		return nil, err
	}
	return item, nil
}

func (s *FavouriteService) RemoveFavourite(ctx context.Context, userID, itemID uint) error {
	if err := s.Repo.DeleteFavourite(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavourite
		}
		return err
	}
	return nil
}
