package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/brewcrew/cafe-backend/internal/repo"
	"github.com/brewcrew/cafe-backend/internal/tokens"
)

const (
	CtxUserID = "userID"
	CtxAdmin  = "admin"
)

type Middleware struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func New(r *repo.GormRepo, secret []byte) *Middleware {
	return &Middleware{Repo: r, JWTSecret: secret}
}

type validatorFunc func(c echo.Context, userID uint) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

// RequireAdmin re-reads the user row and checks the persisted admin flag; the
// admin claim baked into the token at issuance is never trusted.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(c echo.Context, userID uint) error {
		user, err := m.Repo.GetUser(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			return err
		}
		if !user.Admin {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied! must be an admin.")
		}
		c.Set(CtxAdmin, true)
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator validatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication token is required")
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		c.Set(CtxUserID, userID)

		if validator != nil {
			if validationErr := validator(c, userID); validationErr != nil {
				return validationErr
			}
		}

		return next(c)
	}
}

// UserID reads the authenticated identity attached by RequireAuth.
func UserID(c echo.Context) (uint, bool) {
	id, ok := c.Get(CtxUserID).(uint)
	return id, ok
}
