package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/brewcrew/cafe-backend/internal/logging"
	"github.com/brewcrew/cafe-backend/internal/models"
	"github.com/brewcrew/cafe-backend/internal/mykafka"
	"github.com/brewcrew/cafe-backend/internal/service"
	"github.com/brewcrew/cafe-backend/internal/service/search"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

type MenuHandler struct {
	Svc      *service.MenuService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *MenuHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "menu_events", fmt.Sprint(event["type"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *MenuHandler) indexItem(c echo.Context, item *models.Item) {
	if h.ES == nil {
		return
	}
	if err := search.IndexItem(c.Request().Context(), h.ES, h.ESIndex, item); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index error", "item_id", item.ID, "error", err)
	}
}

func (h *MenuHandler) removeFromIndex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	if err := search.RemoveItem(c.Request().Context(), h.ES, h.ESIndex, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("search remove error", "item_id", id, "error", err)
	}
}

func parseID(c echo.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}

func (h *MenuHandler) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_menu")

	items, err := h.Svc.ListItems(ctx)
	if err != nil {
		l.Error("get_menu_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": items})
}

func (h *MenuHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("get_categories_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": categories})
}

func (h *MenuHandler) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_item")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			l.Warn("get_item_failed", "status", 404, "item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Item not found.")
		}
		l.Error("get_item_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": item})
}

// GetItemsByCategory answers 404 both for an unknown category and for a known
// one with zero items; the two cases are indistinguishable to clients.
func (h *MenuHandler) GetItemsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get_items_by_category")

	categoryID, err := parseID(c, "categoryId")
	if err != nil {
		return err
	}

	items, err := h.Svc.ListItemsByCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, service.ErrNoItemsInCategory) {
			l.Warn("get_items_by_category_failed", "status", 404, "category_id", categoryID)
			return echo.NewHTTPError(http.StatusNotFound, "There are currently no items in this category.")
		}
		l.Error("get_items_by_category_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": items})
}

func (h *MenuHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_category_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "Category name is required.")
		case errors.Is(err, service.ErrDuplicateName):
			l.Warn("create_category_error", "status", 400, "reason", "duplicate name", "name", req.Name)
			return echo.NewHTTPError(http.StatusBadRequest, "A category with this name already exists.")
		}
		l.Error("create_category_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":       "category_created",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Category %s created successfully.", category.Name),
	})
}

func (h *MenuHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create_item")

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.CreateItem(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			l.Warn("create_item_error", "status", 404, "reason", "unknown category", "category", req.Category)
			return echo.NewHTTPError(http.StatusNotFound, "Category not found.")
		case errors.Is(err, service.ErrDuplicateName):
			l.Warn("create_item_error", "status", 400, "reason", "duplicate name", "name", req.Name)
			return echo.NewHTTPError(http.StatusBadRequest, "An item with this name already exists.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_item_error", "status", 400, "reason", "invalid fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Item name is required and price cannot be negative.")
		}
		l.Error("create_item_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": fmt.Sprintf("Item %s created successfully.", item.Name),
	})
}

func (h *MenuHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.update_item")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateItem(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			l.Warn("update_item_error", "status", 404, "item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Item not found.")
		case errors.Is(err, service.ErrCategoryNotFound):
			l.Warn("update_item_error", "status", 404, "reason", "unknown category")
			return echo.NewHTTPError(http.StatusNotFound, "Category not found.")
		case errors.Is(err, service.ErrDuplicateName):
			l.Warn("update_item_error", "status", 400, "reason", "duplicate name")
			return echo.NewHTTPError(http.StatusBadRequest, "An item with this name already exists.")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_item_error", "status", 400, "reason", "invalid fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Price cannot be negative.")
		}
		l.Error("update_item_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("update_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Item updated successfully.",
		"item":    item,
	})
}

func (h *MenuHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete_item")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Svc.DeleteItem(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			l.Warn("delete_item_error", "status", 404, "item_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Item not found.")
		}
		l.Error("delete_item_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "item_deleted",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.removeFromIndex(c, item.ID)

	l.Info("delete_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Item %s deleted successfully.", item.Name),
	})
}

func (h *MenuHandler) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete_category")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	category, err := h.Svc.DeleteCategory(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			l.Warn("delete_category_error", "status", 404, "category_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Category not found.")
		case errors.Is(err, service.ErrCategoryInUse):
			l.Warn("delete_category_error", "status", 400, "reason", "category in use", "category_id", id)
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete this category as there are still items associated with it.")
		}
		l.Error("delete_category_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":       "category_deleted",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	l.Info("delete_category_success", "category_id", category.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Category %s deleted successfully.", category.Name),
	})
}
