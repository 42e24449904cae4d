package user

import (
	"context"

	"go.uber.org/zap"

	domain "wegrowup-api/internal/domain/user"
	"wegrowup-api/pkg/logger"
)

// Service implements Usecase on top of the fixed sample record.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	log *zap.Logger
}

// New creates a new Service. A nil logger disables logging.
func New(log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log}
}

// GetData returns the sample user record.
func (s *Service) GetData(ctx context.Context) *GetDataResponse {
	u := domain.Sample()

	logger.WithContext(ctx, s.log).Debug("serving sample user", zap.String("id", u.ID))

	return &GetDataResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
	}
}
