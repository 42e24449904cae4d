package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"wegrowup-api/internal/adapter/gateway"
	ginhandler "wegrowup-api/internal/adapter/gin/handler"
	ginrouter "wegrowup-api/internal/adapter/gin/router"
	"wegrowup-api/internal/config"
	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Server holds the gRPC server, the REST gateway and the Gin API
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	GRPC   *grpc.Server
	HTTP   *http.Server
	Gin    *http.Server

	gwMux    *runtime.ServeMux
	gwCtx    context.Context
	gwCancel context.CancelFunc

	ready    chan struct{}
	grpcAddr net.Addr
	httpAddr net.Addr
	ginAddr  net.Addr
}

// New creates a new server instance
func New(
	cfg *config.Config,
	l *zap.Logger,
	userUC user.Usecase,
	rateLimiter *ratelimit.Limiter,
	ginHandler *ginhandler.DataHandler,
	m *metrics.Metrics,
) *Server {
	gwMux := gateway.NewServeMux()
	gwCtx, gwCancel := context.WithCancel(context.Background())

	return &Server{
		Config: cfg,
		Logger: l,
		GRPC:   SetupGRPC(userUC, l, rateLimiter, m),
		HTTP:   SetupHTTPGateway(gwMux, ":"+cfg.App.HTTPPort, l),
		Gin: SetupGinServer(ginHandler, ginrouter.Options{
			ServiceName: cfg.Logger.ServiceName,
			RateLimiter: rateLimiter,
			Metrics:     m,
		}, ":"+cfg.App.GinPort, l),
		gwMux:    gwMux,
		gwCtx:    gwCtx,
		gwCancel: gwCancel,
		ready:    make(chan struct{}),
	}
}

// Start binds all listeners and serves until every server has stopped.
// If one server fails, the others are closed and its error is returned.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}

	grpcLis, err := lc.Listen(ctx, "tcp", ":"+s.Config.App.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}
	httpLis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("failed to listen for HTTP gateway: %w", err)
	}
	ginLis, err := lc.Listen(ctx, "tcp", s.Gin.Addr)
	if err != nil {
		_ = grpcLis.Close()
		_ = httpLis.Close()
		return fmt.Errorf("failed to listen for Gin: %w", err)
	}

	if err := gateway.RegisterAppServiceHandlerFromEndpoint(
		s.gwCtx,
		s.gwMux,
		loopbackTarget(grpcLis.Addr()),
		[]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
		s.Logger,
	); err != nil {
		_ = grpcLis.Close()
		_ = httpLis.Close()
		_ = ginLis.Close()
		return fmt.Errorf("failed to register gateway: %w", err)
	}

	s.grpcAddr, s.httpAddr, s.ginAddr = grpcLis.Addr(), httpLis.Addr(), ginLis.Addr()
	close(s.ready)

	g, gctx := errgroup.WithContext(s.gwCtx)

	g.Go(func() error {
		s.Logger.Info("gRPC server running", zap.String("address", s.grpcAddr.String()))
		return s.GRPC.Serve(grpcLis)
	})
	g.Go(func() error {
		s.Logger.Info("REST gateway running", zap.String("address", s.httpAddr.String()))
		return serveHTTP(s.HTTP, httpLis)
	})
	g.Go(func() error {
		s.Logger.Info("Gin REST API running", zap.String("address", s.ginAddr.String()))
		return serveHTTP(s.Gin, ginLis)
	})
	g.Go(func() error {
		// Unblocks on Shutdown or on the first server error
		<-gctx.Done()
		s.GRPC.Stop()
		_ = s.HTTP.Close()
		_ = s.Gin.Close()
		return nil
	})

	return g.Wait()
}

// Shutdown gracefully stops all servers, forcing the gRPC server down if ctx expires first
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	s.Logger.Info("shutting down HTTP gateway...")
	if err := s.HTTP.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	s.Logger.Info("shutting down Gin server...")
	if err := s.Gin.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("gin shutdown: %w", err))
	}

	s.Logger.Info("shutting down gRPC server...")
	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.GRPC.Stop()
		errs = append(errs, fmt.Errorf("gRPC graceful stop: %w", ctx.Err()))
	}

	s.gwCancel()

	return errors.Join(errs...)
}

// Ready is closed once every listener is bound
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// GRPCAddr returns the bound gRPC address; valid after Ready
func (s *Server) GRPCAddr() net.Addr { return s.grpcAddr }

// HTTPAddr returns the bound gateway address; valid after Ready
func (s *Server) HTTPAddr() net.Addr { return s.httpAddr }

// GinAddr returns the bound Gin address; valid after Ready
func (s *Server) GinAddr() net.Addr { return s.ginAddr }

func serveHTTP(srv *http.Server, lis net.Listener) error {
	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loopbackTarget turns a wildcard listen address into a dialable local target
func loopbackTarget(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return net.JoinHostPort("localhost", strconv.Itoa(tcp.Port))
	}
	return addr.String()
}
