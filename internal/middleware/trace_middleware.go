package middleware

import (
	"andaMarket/business/feed"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceMiddleware stamps every request with a trace id, reusing an inbound
// X-Request-ID when the caller supplies one.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := feed.WithTraceID(c.Request().Context(), traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, traceID)

			return next(c)
		}
	}
}
