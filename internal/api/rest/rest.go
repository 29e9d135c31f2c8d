package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/ff-ledger-sync/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health and metrics (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// NFT records (public read access)
		v1.GET("/nfts", handler.ListNFTs)
		v1.GET("/nfts/:contract/:token_id", handler.GetNFT)

		// Operator endpoints
		admin := v1.Group("", middleware.APIKeyAuth(authCfg))
		admin.GET("/pending-mints", handler.ListPendingMints)
		admin.GET("/sync-states", handler.ListSyncStates)
		admin.POST("/sync-states/:contract/reset", handler.ResetCheckpoint)
		admin.POST("/reconciliations", handler.StartReconciliation)
	}
}
