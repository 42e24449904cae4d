package middleware

import (
	"context"

	pkgerrors "wegrowup-api/pkg/errors"
	"wegrowup-api/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// RecoveryInterceptor converts a panic in a handler into an Internal status.
func RecoveryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(ctx, log).Error("panic recovered in grpc handler",
					zap.Any("panic", r),
					zap.String("method", info.FullMethod),
					zap.Stack("stack"),
				)
				err = pkgerrors.ErrInternal.GRPCStatus().Err()
			}
		}()
		return handler(ctx, req)
	}
}
