package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

type MenuService struct {
	Repo *repo.GormRepo
}

func (s *MenuService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.GetItems(ctx)
}

func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *MenuService) GetItemByID(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListItemsByCategory reports an unknown category and an empty one the same
// way; callers cannot tell them apart. Kept on purpose, see DESIGN.md.
func (s *MenuService) ListItemsByCategory(ctx context.Context, categoryID uint) ([]models.Item, error) {
	items, err := s.Repo.GetItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItemsInCategory
	}
	return items, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetCategoryByName(ctx, name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: name}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &category, nil
}

func (s *MenuService) CreateItem(ctx context.Context, req transport.CreateItemRequest) (*models.Item, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Price < 0 {
		return nil, ErrValidation
	}

	category, err := s.Repo.GetCategoryByName(ctx, req.Category)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if _, err := s.Repo.GetItemByName(ctx, req.Name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.Item{
		Name:        req.Name,
		CategoryID:  category.ID,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.Repo.CreateItem(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return &item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id uint, req transport.PatchItemRequest) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if req.Category != nil {
		category, err := s.Repo.GetCategoryByName(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		item.CategoryID = category.ID
	}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Image != nil {
		item.Image = *req.Image
	}

	if err := s.Repo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// DeleteCategory blocks while items still reference the category; deletion is
// never cascaded.
func (s *MenuService) DeleteCategory(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	total, err := s.Repo.CountItemsInCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, ErrCategoryInUse
	}

	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
