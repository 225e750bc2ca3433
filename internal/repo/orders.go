package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

var ErrOrderItemMissing = errors.New("order references a missing item")

// PlaceOrder resolves every line against the catalog and writes the order and
// its lines in one transaction; the total is computed from current prices.
func (r *GormRepo) PlaceOrder(ctx context.Context, userID uint, lines []transport.OrderLine) (*models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range lines {
			var item models.Item
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOrderItemMissing
				}
				return err
			}
			total += float64(line.Quantity) * item.Price
		}

		order = models.Order{
			UserID:    userID,
			Total:     total,
			Status:    "new",
			CreatedAt: time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			oi := models.OrderItem{
				OrderID:  order.ID,
				UserID:   userID,
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return &order, orderItems, nil
}

func (r *GormRepo) GetOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, userID, id uint) (*models.Order, []models.OrderItem, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return nil, nil, err
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &order, items, nil
}
