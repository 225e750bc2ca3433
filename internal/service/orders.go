package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

type PlacedOrder struct {
	OrderID uint               `json:"order_id"`
	Total   float64            `json:"total"`
	Status  string             `json:"status"`
	Items   []models.OrderItem `json:"items"`
}

func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, lines []transport.OrderLine) (*PlacedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for i := range lines {
		if lines[i].Quantity < 1 {
			lines[i].Quantity = 1
		}
	}

	order, items, err := s.Repo.PlaceOrder(ctx, userID, lines)
	if err != nil {
		if errors.Is(err, repo.ErrOrderItemMissing) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &PlacedOrder{
		OrderID: order.ID,
		Total:   order.Total,
		Status:  order.Status,
		Items:   items,
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.GetOrders(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, userID, id uint) (*models.Order, []models.OrderItem, error) {
	order, items, err := s.Repo.GetOrder(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}
	return order, items, nil
}
