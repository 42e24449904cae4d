package server

import (
	"net/http"
	"time"

	ginhandler "wegrowup-api/internal/adapter/gin/handler"
	ginrouter "wegrowup-api/internal/adapter/gin/router"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(handler *ginhandler.DataHandler, opts ginrouter.Options, ginAddr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(handler, opts, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
