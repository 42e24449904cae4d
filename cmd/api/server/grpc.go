package server

import (
	grpcadapter "wegrowup-api/internal/adapter/grpc"
	"wegrowup-api/internal/adapter/grpc/middleware"
	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/logger"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// SetupGRPC creates and configures the gRPC server
func SetupGRPC(userUC user.Usecase, l *zap.Logger, rateLimiter *ratelimit.Limiter, m *metrics.Metrics) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(l),
			logger.RequestIDInterceptor(),
			middleware.MetricsInterceptor(m),
			middleware.RateLimitInterceptor(rateLimiter),
		),
	)
	grpcadapter.RegisterAppServiceServer(grpcServer, grpcadapter.NewAppServer(userUC, l))

	return grpcServer
}
