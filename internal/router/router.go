package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"pothen/internal/handler"
	"pothen/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *slog.Logger,
	allowedOrigins []string,
	healthH *handler.HealthHandler,
	declH *handler.DeclarationHandler,
	statsH *handler.StatsHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	declarations := v1.Group("/declarations")
	declarations.GET("", declH.List)
	declarations.GET("/:id", declH.GetByID)

	v1.GET("/stats", statsH.GetStats)

	return r
}
