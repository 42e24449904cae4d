package gateway

import (
	"context"
	"fmt"
	"net/http"

	grpcadapter "wegrowup-api/internal/adapter/grpc"
	"wegrowup-api/pkg/logger"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
)

// DataPath is the REST route proxied to AppService.GetData.
const DataPath = "/v1/data"

// NewServeMux creates a gateway mux rendering responses with protobuf field names
// and forwarding the request ID header as gRPC metadata.
func NewServeMux() *runtime.ServeMux {
	return runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				UseProtoNames:   true,
				EmitUnpopulated: true,
			},
			UnmarshalOptions: protojson.UnmarshalOptions{
				DiscardUnknown: true,
			},
		}),
		runtime.WithIncomingHeaderMatcher(func(key string) (string, bool) {
			if http.CanonicalHeaderKey(key) == http.CanonicalHeaderKey(logger.RequestIDHeader) {
				return logger.RequestIDHeader, true
			}
			return runtime.DefaultHeaderMatcher(key)
		}),
	)
}

// RegisterAppServiceHandlerFromEndpoint dials endpoint and registers the AppService routes on mux.
// The connection is closed when ctx is done.
func RegisterAppServiceHandlerFromEndpoint(ctx context.Context, mux *runtime.ServeMux, endpoint string, opts []grpc.DialOption, log *zap.Logger) error {
	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	go func() {
		<-ctx.Done()
		if cerr := conn.Close(); cerr != nil {
			log.Warn("failed to close gateway connection", zap.String("endpoint", endpoint), zap.Error(cerr))
		}
	}()

	return RegisterAppServiceHandler(mux, conn, log)
}

// RegisterAppServiceHandler registers the AppService routes on mux using conn.
func RegisterAppServiceHandler(mux *runtime.ServeMux, conn grpc.ClientConnInterface, log *zap.Logger) error {
	return RegisterAppServiceHandlerClient(mux, grpcadapter.NewAppServiceClient(conn), log)
}

// RegisterAppServiceHandlerClient registers the AppService routes on mux using client.
func RegisterAppServiceHandlerClient(mux *runtime.ServeMux, client grpcadapter.AppServiceClient, log *zap.Logger) error {
	return mux.HandlePath(http.MethodGet, DataPath, func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		_, outbound := runtime.MarshalerForRequest(mux, r)

		annotated, err := runtime.AnnotateContext(ctx, mux, r, grpcadapter.GetDataFullMethod,
			runtime.WithHTTPPathPattern(DataPath))
		if err != nil {
			runtime.HTTPError(ctx, mux, outbound, w, r, err)
			return
		}

		var md runtime.ServerMetadata
		resp, err := client.GetData(annotated, &emptypb.Empty{},
			grpc.Header(&md.HeaderMD), grpc.Trailer(&md.TrailerMD))
		annotated = runtime.NewServerMetadataContext(annotated, md)
		if err != nil {
			log.Warn("gateway GetData failed",
				zap.String("request_id", requestIDFrom(annotated)),
				zap.Error(err),
			)
			runtime.HTTPError(annotated, mux, outbound, w, r, err)
			return
		}

		runtime.ForwardResponseMessage(annotated, mux, outbound, w, r, resp)
	})
}

func requestIDFrom(ctx context.Context) string {
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if ids := md.Get(logger.RequestIDHeader); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}
