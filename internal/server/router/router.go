package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/homy/internal/server/handlers"
	"github.com/mamadbah2/homy/internal/server/middleware"
)

// Handlers groups the HTTP adapters served by the API.
type Handlers struct {
	Inventory   *handlers.InventoryHandler
	Takeout     *handlers.TakeoutHandler
	Shopping    *handlers.ShoppingHandler
	Suggestions *handlers.SuggestionHandler
	Receipts    *handlers.ReceiptHandler
	Reports     *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/scan-receipt", h.Receipts.Scan)

		api.GET("/inventory", h.Inventory.List)
		api.POST("/inventory", h.Inventory.Add)
		api.GET("/inventory/expiring", h.Inventory.Expiring)
		api.DELETE("/inventory/:category/:index", h.Inventory.Remove)

		api.POST("/takeout", h.Takeout.Record)

		api.GET("/shopping-list", h.Shopping.List)
		api.POST("/shopping-list", h.Shopping.Add)
		api.DELETE("/shopping-list", h.Shopping.Delete)

		api.GET("/meal-suggestions", h.Suggestions.Get)

		api.GET("/reports/daily", h.Reports.Daily)
		api.GET("/reports/history", h.Reports.History)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	logger.Info("router initialized")
	return r
}
