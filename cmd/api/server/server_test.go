package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"wegrowup-api/internal/adapter/gateway"
	ginhandler "wegrowup-api/internal/adapter/gin/handler"
	ginrouter "wegrowup-api/internal/adapter/gin/router"
	grpcadapter "wegrowup-api/internal/adapter/grpc"
	"wegrowup-api/internal/config"
	"wegrowup-api/internal/usecase/user"
	"wegrowup-api/pkg/metrics"
	"wegrowup-api/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
)

const sampleJSON = `{"id":"1","name":"john doe","email":"john.doe@example.com","password":"password"}`

// ServerSuite runs every transport on ephemeral ports
type ServerSuite struct {
	suite.Suite
	srv     *Server
	started chan error
}

func (s *ServerSuite) SetupTest() {
	t := s.T()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.App.GRPCPort, cfg.App.HTTPPort, cfg.App.GinPort = "0", "0", "0"

	log := zaptest.NewLogger(t)
	uc := user.New(log)
	limiter := ratelimit.New(nil, ratelimit.Config{}, log)

	s.srv = New(cfg, log, uc, limiter, ginhandler.NewDataHandler(uc, log), metrics.New("test"))
	s.started = make(chan error, 1)
	go func() {
		s.started <- s.srv.Start(context.Background())
	}()

	select {
	case <-s.srv.Ready():
	case err := <-s.started:
		t.Fatalf("server exited before ready: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server not ready in time")
	}
}

func (s *ServerSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.NoError(s.srv.Shutdown(ctx))
	select {
	case err := <-s.started:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("server did not stop")
	}
}

func (s *ServerSuite) get(url string) (int, string) {
	resp, err := http.Get(url)
	s.Require().NoError(err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, string(body)
}

func (s *ServerSuite) TestGinData() {
	code, body := s.get("http://" + loopbackTarget(s.srv.GinAddr()) + "/api")

	s.Equal(http.StatusOK, code)
	s.JSONEq(sampleJSON, body)
}

func (s *ServerSuite) TestGinHealth() {
	code, body := s.get("http://" + loopbackTarget(s.srv.GinAddr()) + "/health")

	s.Equal(http.StatusOK, code)
	s.Contains(body, "healthy")
}

func (s *ServerSuite) TestGatewayData() {
	code, body := s.get("http://" + loopbackTarget(s.srv.HTTPAddr()) + "/v1/data")

	s.Equal(http.StatusOK, code)
	s.JSONEq(sampleJSON, body)
}

func (s *ServerSuite) TestSwagger() {
	code, body := s.get("http://" + loopbackTarget(s.srv.HTTPAddr()) + "/swagger/app.swagger.json")

	s.Equal(http.StatusOK, code)
	s.Contains(body, "AppService_GetData")
}

func (s *ServerSuite) TestGRPCData() {
	conn, err := grpc.NewClient(loopbackTarget(s.srv.GRPCAddr()),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	defer conn.Close()

	resp, err := grpcadapter.NewAppServiceClient(conn).GetData(context.Background(), &emptypb.Empty{})
	s.Require().NoError(err)
	s.Equal("john doe", resp.AsMap()["name"])
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestShutdown_WithoutStart(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	uc := user.New(log)
	srv := New(cfg, log, uc, nil, ginhandler.NewDataHandler(uc, log), nil)

	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestHTTPServers_ShareTimeouts(t *testing.T) {
	log := zaptest.NewLogger(t)
	uc := user.New(log)

	gw := SetupHTTPGateway(gateway.NewServeMux(), ":0", log)
	gn := SetupGinServer(ginhandler.NewDataHandler(uc, log), ginrouter.Options{}, ":0", log)

	for _, srv := range []*http.Server{gw, gn} {
		assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
		assert.Equal(t, 10*time.Second, srv.ReadTimeout)
		assert.Equal(t, 10*time.Second, srv.WriteTimeout)
		assert.Equal(t, 120*time.Second, srv.IdleTimeout)
	}
}
