package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brewcrew/cafe-backend/internal/logging"
	authmw "github.com/brewcrew/cafe-backend/internal/middleware/auth"
	"github.com/brewcrew/cafe-backend/internal/mykafka"
	"github.com/brewcrew/cafe-backend/internal/service"
	"github.com/brewcrew/cafe-backend/internal/transport"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.create_order")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			l.Warn("create_order_error", "status", 400, "reason", "empty order")
			return echo.NewHTTPError(http.StatusBadRequest, "Order must contain at least one item.")
		case errors.Is(err, service.ErrItemNotFound):
			l.Warn("create_order_error", "status", 400, "reason", "unknown item")
			return echo.NewHTTPError(http.StatusBadRequest, "One or more items in the order could not be found.")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.OrderID,
		"total":   order.Total,
	})

	l.Info("create_order_success", "order_id", order.OrderID, "total", order.Total)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order placed successfully.",
		"order":   order,
	})
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_orders")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	orders, err := h.Svc.ListOrders(ctx, userID)
	if err != nil {
		l.Error("get_orders_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": orders})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.get_order")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, items, err := h.Svc.GetOrder(ctx, userID, id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			l.Warn("get_order_failed", "status", 404, "order_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "Order not found.")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"result": echo.Map{
			"order": order,
			"items": items,
		},
	})
}
