package router

import (
	"net/http"

	"wegrowup-api/internal/adapter/gin/handler"
	"wegrowup-api/internal/adapter/gin/middleware"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries the optional collaborators of the router
type Options struct {
	ServiceName string
	RateLimiter *ratelimit.Limiter // nil disables rate limiting
	Metrics     *metrics.Metrics   // nil disables /metrics
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(dataHandler *handler.DataHandler, opts Options, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Clients reach the API directly, so forwarding headers are never trusted for ClientIP
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to reset trusted proxies", zap.Error(err))
	}

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Metrics(opts.Metrics))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	api := router.Group("/api", middleware.RateLimiter(opts.RateLimiter))
	{
		api.GET("", dataHandler.GetData)
	}

	return router
}
