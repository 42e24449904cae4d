package grpc

import (
	"context"

	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/logger"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// AppServer implements AppServiceServer on top of the usecase
type AppServer struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewAppServer creates a new gRPC app service server
func NewAppServer(uc user.Usecase, log *zap.Logger) *AppServer {
	return &AppServer{uc: uc, log: log}
}

// GetData handles gRPC GetData request
func (s *AppServer) GetData(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	resp := s.uc.GetData(ctx)

	logger.WithContext(ctx, s.log).Debug("gRPC GetData request", zap.String("id", resp.ID))

	return ToStruct(resp), nil
}

// ToStruct converts the usecase response into its wire representation.
func ToStruct(resp *user.GetDataResponse) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			"id":       structpb.NewStringValue(resp.ID),
			"name":     structpb.NewStringValue(resp.Name),
			"email":    structpb.NewStringValue(resp.Email),
			"password": structpb.NewStringValue(resp.Password),
		},
	}
}
