package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "app.v1.AppService"
	// GetDataFullMethod is the full method name of AppService.GetData.
	GetDataFullMethod = "/" + ServiceName + "/GetData"
)

// AppServiceServer is the server API for AppService.
// Messages use well-known types so no generated code is needed.
type AppServiceServer interface {
	GetData(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// AppServiceDesc describes AppService for grpc.Server.RegisterService.
var AppServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AppServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetData",
			Handler:    getDataHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "app/v1/app.proto",
}

// RegisterAppServiceServer registers srv on s.
func RegisterAppServiceServer(s grpc.ServiceRegistrar, srv AppServiceServer) {
	s.RegisterService(&AppServiceDesc, srv)
}

func getDataHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AppServiceServer).GetData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetDataFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AppServiceServer).GetData(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// AppServiceClient is the client API for AppService.
type AppServiceClient interface {
	GetData(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type appServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAppServiceClient creates a client bound to cc.
func NewAppServiceClient(cc grpc.ClientConnInterface) AppServiceClient {
	return &appServiceClient{cc: cc}
}

func (c *appServiceClient) GetData(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDataFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
