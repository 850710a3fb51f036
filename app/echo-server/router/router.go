package router

import (
	"andaMarket/internal/middleware"
	"andaMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetFeedRoutes(api *echo.Group, handler *rest.FeedHandler) {
	feed := api.Group("/feed", middleware.OptionalAuthMiddleware())
	feed.GET("", handler.ComposeFeed)
	feed.GET("/debug", handler.DebugScores)

	authed := api.Group("/feed", middleware.AuthMiddleware())
	authed.GET("/personalized", handler.Personalized)
	authed.POST("/events", handler.RecordInteraction)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/:id", handler.GetProductByID)
}
