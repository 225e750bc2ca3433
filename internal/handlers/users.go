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

type UserHandler struct {
	Svc      *service.UserService
	Producer *mykafka.Producer
}

func (h *UserHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.get_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("get_users_error", "status", 500, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Users fetched successfully.",
		"result":  users,
	})
}

func (h *UserHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("signup_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required.")
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("signup_error", "status", 400, "reason", "duplicate email")
			return echo.NewHTTPError(http.StatusBadRequest, "A profile with this email already exists.")
		}
		l.Error("signup_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_registered",
		"userID": res.User.ID,
		"email":  res.User.Email,
	})

	l.Info("signup_success", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    fmt.Sprintf("User %s created successfully.", res.User.Name),
		"newUser":    res.User,
		"token":      res.Token,
		"decodedJwt": res.Claims,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailNotFound):
			l.Warn("login_failed", "status", 404, "reason", "unknown email")
			return echo.NewHTTPError(http.StatusNotFound, "No profile with this email has been found.")
		case errors.Is(err, service.ErrWrongPassword):
			l.Warn("login_failed", "status", 401, "reason", "wrong password")
			return echo.NewHTTPError(http.StatusUnauthorized, "Wrong password.")
		}
		l.Error("login_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_logged_in",
		"userID": res.User.ID,
	})

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Welcome back, %s!", res.User.Name),
		"token":   res.Token,
	})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.update_profile")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req transport.PatchProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			l.Warn("update_profile_error", "status", 404, "user_id", userID)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		case errors.Is(err, service.ErrDuplicateEmail):
			l.Warn("update_profile_error", "status", 400, "reason", "email in use")
			return echo.NewHTTPError(http.StatusBadRequest, "This email is already in use.")
		}
		l.Error("update_profile_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_updated",
		"userID": res.User.ID,
	})

	l.Info("update_profile_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profile updated successfully.",
		"token":   res.Token,
	})
}

func (h *UserHandler) DeleteProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete_profile")

	userID, ok := authmw.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	user, err := h.Svc.DeleteProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			l.Warn("delete_profile_error", "status", 404, "user_id", userID)
			return echo.NewHTTPError(http.StatusNotFound, "User not found.")
		}
		l.Error("delete_profile_error", "status", 500, "error", err)
		return err
	}

	h.publish(c, map[string]any{
		"type":   "user_deleted",
		"userID": user.ID,
	})

	l.Info("delete_profile_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("User %s deleted successfully.", user.Name),
	})
}
