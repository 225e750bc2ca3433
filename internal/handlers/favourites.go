package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewcrew/cafe-backend/internal/logging"
	authmw "github.com/brewcrew/cafe-backend/internal/middleware/auth"
	"github.com/brewcrew/cafe-backend/internal/service"
)

type FavouriteHandler struct {
	Svc *service.FavouriteService
}

func (h *FavouriteHandler) GetFavourites(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourites.get_favourites")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	items, err := h.Svc.ListFavourites(ctx, userID)
	if err != nil {
		l.Error("get_favourites_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": items})
}

func (h *FavouriteHandler) AddFavourite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourites.add_favourite")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}

	if _, err := h.Svc.AddFavourite(ctx, userID, itemID); err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			l.Warn("add_favourite_error", "status", 404, "item_id", itemID)
			return echo.NewHTTPError(http.StatusNotFound, "Item not found.")
		case errors.Is(err, service.ErrAlreadyFavourite):
			l.Warn("add_favourite_error", "status", 400, "item_id", itemID)
			return echo.NewHTTPError(http.StatusBadRequest, "This item is already in your favourites.")
		}
		l.Error("add_favourite_error", "status", 500, "error", err)
		return err
	}

	l.Info("add_favourite_success", "item_id", itemID)
	return c.JSON(http.StatusCreated, echo.Map{"message": "Item added to favourites."})
}

func (h *FavouriteHandler) RemoveFavourite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favourites.remove_favourite")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveFavourite(ctx, userID, itemID); err != nil {
		if errors.Is(err, service.ErrNotFavourite) {
			l.Warn("remove_favourite_error", "status", 404, "item_id", itemID)
			return echo.NewHTTPError(http.StatusNotFound, "This item is not in your favourites.")
		}
		l.Error("remove_favourite_error", "status", 500, "error", err)
		return err
	}

	l.Info("remove_favourite_success", "item_id", itemID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from favourites."})
}
