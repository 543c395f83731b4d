package routes

import (
	"github.com/gin-gonic/gin"

	"sales-reconciliation-backend/internal/config"
	handler "sales-reconciliation-backend/internal/handlers"
	"sales-reconciliation-backend/internal/repository"
	service "sales-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	loader := repository.NewFileTableLoader()
	reconService := service.NewService()
	reconHandler := handler.NewReconciliationHandler(reconService, loader, cfg)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	recon := api.Group("/reconciliation")
	recon.POST("/run", reconHandler.Run)
	recon.POST("/products", reconHandler.Products)
}
