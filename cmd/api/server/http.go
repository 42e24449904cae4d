package server

import (
	"net/http"
	"time"

	"wegrowup-api/internal/adapter/gateway"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// SetupHTTPGateway creates the HTTP server fronting the gRPC gateway mux and the Swagger UI.
// Gateway routes are registered on gwMux once the gRPC listener is bound.
func SetupHTTPGateway(gwMux *runtime.ServeMux, httpAddr string, l *zap.Logger) *http.Server {
	httpMux := http.NewServeMux()
	gateway.RegisterSwagger(httpMux)
	httpMux.Handle("/", gwMux)

	l.Info("REST gateway configured", zap.String("address", httpAddr))

	return &http.Server{
		Addr:              httpAddr,
		Handler:           httpMux,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
