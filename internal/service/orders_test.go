package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	db := InitTestDB(t)
	return &OrderService{Repo: &repo.GormRepo{DB: db}}, db
}

func seedItems(t *testing.T, db *gorm.DB) (models.Item, models.Item) {
	t.Helper()

	category := models.Category{Name: "Coffee"}
	require.NoError(t, db.Create(&category).Error)

	espresso := models.Item{Name: "Espresso", CategoryID: category.ID, Price: 2}
	latte := models.Item{Name: "Latte", CategoryID: category.ID, Price: 3.5}
	require.NoError(t, db.Create(&espresso).Error)
	require.NoError(t, db.Create(&latte).Error)

	return espresso, latte
}

func TestPlaceOrder(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()
	espresso, latte := seedItems(t, db)

	order, err := svc.PlaceOrder(ctx, 1, []transport.OrderLine{
		{ItemID: espresso.ID, Quantity: 2},
		{ItemID: latte.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotZero(t, order.OrderID)
	assert.Equal(t, 7.5, order.Total)
	assert.Equal(t, "new", order.Status)
	require.Len(t, order.Items, 2)
}

func TestPlaceOrder_DefaultsZeroQuantityToOne(t *testing.T) {
	svc, db := newOrderService(t)
	espresso, _ := seedItems(t, db)

	order, err := svc.PlaceOrder(context.Background(), 1, []transport.OrderLine{{ItemID: espresso.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2.0, order.Total)
	assert.Equal(t, uint(1), order.Items[0].Quantity)
}

func TestPlaceOrder_Empty(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrder_UnknownItemLeavesNothingBehind(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()
	espresso, _ := seedItems(t, db)

	_, err := svc.PlaceOrder(ctx, 1, []transport.OrderLine{
		{ItemID: espresso.ID, Quantity: 1},
		{ItemID: 999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrItemNotFound)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
	var orderItems int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&orderItems).Error)
	assert.Zero(t, orderItems)
}

func TestListOrders_ScopedToUser(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()
	espresso, _ := seedItems(t, db)

	_, err := svc.PlaceOrder(ctx, 1, []transport.OrderLine{{ItemID: espresso.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, 2, []transport.OrderLine{{ItemID: espresso.ID, Quantity: 3}})
	require.NoError(t, err)

	mine, err := svc.ListOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, uint(1), mine[0].UserID)
}

func TestGetOrder_OwnerOnly(t *testing.T) {
	svc, db := newOrderService(t)
	ctx := context.Background()
	espresso, _ := seedItems(t, db)

	placed, err := svc.PlaceOrder(ctx, 1, []transport.OrderLine{{ItemID: espresso.ID, Quantity: 1}})
	require.NoError(t, err)

	order, items, err := svc.GetOrder(ctx, 1, placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, placed.OrderID, order.ID)
	require.Len(t, items, 1)

	_, _, err = svc.GetOrder(ctx, 2, placed.OrderID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}
