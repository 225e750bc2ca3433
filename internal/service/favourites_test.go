package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/repo"
)

func newFavouriteService(t *testing.T) (*FavouriteService, *gorm.DB) {
	db := InitTestDB(t)
	return &FavouriteService{Repo: &repo.GormRepo{DB: db}}, db
}

func TestAddFavourite(t *testing.T) {
	svc, db := newFavouriteService(t)
	ctx := context.Background()
	espresso, latte := seedItems(t, db)

	item, err := svc.AddFavourite(ctx, 1, espresso.ID)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", item.Name)

	_, err = svc.AddFavourite(ctx, 1, latte.ID)
	require.NoError(t, err)

	items, err := svc.ListFavourites(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	other, err := svc.ListFavourites(ctx, 2)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestAddFavourite_UnknownItem(t *testing.T) {
	svc, _ := newFavouriteService(t)

	_, err := svc.AddFavourite(context.Background(), 1, 999)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestAddFavourite_Duplicate(t *testing.T) {
	svc, db := newFavouriteService(t)
	ctx := context.Background()
	espresso, _ := seedItems(t, db)

	_, err := svc.AddFavourite(ctx, 1, espresso.ID)
	require.NoError(t, err)

	_, err = svc.AddFavourite(ctx, 1, espresso.ID)
	require.ErrorIs(t, err, ErrAlreadyFavourite)
}

func TestRemoveFavourite(t *testing.T) {
	svc, db := newFavouriteService(t)
	ctx := context.Background()
	espresso, _ := seedItems(t, db)

	_, err := svc.AddFavourite(ctx, 1, espresso.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavourite(ctx, 1, espresso.ID))

	err = svc.RemoveFavourite(ctx, 1, espresso.ID)
	require.ErrorIs(t, err, ErrNotFavourite)
}
