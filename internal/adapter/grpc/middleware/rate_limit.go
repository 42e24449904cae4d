package middleware

import (
	"context"
	"net"
	"strings"

	pkgerrors "wegrowup-api/pkg/errors"
	"wegrowup-api/pkg/ratelimit"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

// RateLimitInterceptor returns a gRPC unary interceptor applying the token bucket per method and client IP.
func RateLimitInterceptor(limiter *ratelimit.Limiter) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if !limiter.Enabled() {
			return handler(ctx, req)
		}

		key := ratelimit.Key(info.FullMethod, clientIP(ctx))
		if !limiter.Allow(ctx, key) {
			cfg := limiter.Config()
			return nil, pkgerrors.NewRateLimitError(cfg.RequestsPerSecond, cfg.BurstCapacity).GRPCStatus().Err()
		}

		return handler(ctx, req)
	}
}

// clientIP returns the caller's host, ignoring the port so reconnecting does not reset the bucket.
// Forwarded addresses are only honored from loopback peers, which is how the in-process
// gateway dials; grpc-gateway appends the address it saw, so the last hop is used.
func clientIP(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}

	host := p.Addr.String()
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		if fwd := lastForwardedHop(ctx); fwd != "" {
			return fwd
		}
	}

	return host
}

func lastForwardedHop(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("x-forwarded-for")
	if len(values) == 0 {
		return ""
	}
	hops := strings.Split(values[len(values)-1], ",")
	return strings.TrimSpace(hops[len(hops)-1])
}
