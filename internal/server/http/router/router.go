package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/commerce-admin/internal/server/http/handlers"
	"github.com/polkiloo/commerce-admin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CommerceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	searchHandler := handlers.NewSearchHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/page", orderHandler.Page)
	orders.GET("/pending", orderHandler.Pending)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id", orderHandler.Patch)
	orders.DELETE("/:id", orderHandler.Delete)

	api.GET("/products/page", searchHandler.Products)
	api.GET("/users/page", searchHandler.Users)
	api.GET("/reviews/products/:productId", searchHandler.Reviews)

	return engine
}
