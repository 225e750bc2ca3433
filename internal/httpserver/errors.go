package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewcrew/cafe-backend/internal/logging"
)

// ErrorHandler shapes every error the handlers did not map themselves:
// unmatched routes get the page-not-found message, deliberate HTTPErrors keep
// their message, and anything unexpected becomes the generic 500 envelope with
// only the error text exposed.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprint(he.Message)
			if errors.Is(err, echo.ErrNotFound) {
				msg = "404 Page not found"
			}
			if jsonErr := c.JSON(he.Code, echo.Map{"message": msg}); jsonErr != nil {
				logging.FromContext(c.Request().Context()).Error("error response failed", "error", jsonErr)
			}
			return
		}

		if jsonErr := c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Error Occured!",
			"error":   err.Error(),
		}); jsonErr != nil {
			logging.FromContext(c.Request().Context()).Error("error response failed", "error", jsonErr)
		}
	}
}
