package middleware

import (
	"net/http"

	"andaMarket/pkg/logger"
	jsonres "andaMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the fallback echo HTTPErrorHandler; handlers that respond
// themselves never reach it.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "path", c.Path(), "error", err)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
