package router

import (
	"github.com/gin-gonic/gin"

	"invox/internal/handler"
	"invox/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware. The rate
// limiter guards only the extraction endpoint: it protects the external
// model quota, not the stateless transform endpoints.
func Setup(
	batchH *handler.BatchHandler,
	ledgerH *handler.LedgerHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	limiter *middleware.RateLimiter,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	v1.POST("/batches", limiter.Middleware(), batchH.Extract)
	v1.POST("/ledger/apply", ledgerH.Apply)
	v1.POST("/exports/csv", exportH.CSV)
	v1.POST("/exports/xlsx", exportH.XLSX)

	return r
}
