// Package api serves the gRPC health protocol for the directory's backing
// stores.
package api

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Check reports whether a dependency is usable.
type Check struct {
	Service string
	Probe   func(ctx context.Context) error
}

type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	checks   []Check
	interval time.Duration
	logger   *slog.Logger
}

// NewServer creates a gRPC server exposing grpc.health.v1.Health. Every
// check gets its own service name; the empty name aggregates all of them.
func NewServer(logger *slog.Logger, interval time.Duration, checks ...Check) *Server {
	s := &Server{
		health:   health.NewServer(),
		checks:   checks,
		interval: interval,
		logger:   logger,
	}

	s.grpc = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))
	healthpb.RegisterHealthServer(s.grpc, s.health)

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for _, c := range checks {
		s.health.SetServingStatus(c.Service, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return s
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	attrs := []any{
		slog.String("method", info.FullMethod),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.ErrorContext(ctx, "gRPC request failed", attrs...)
	} else {
		s.logger.DebugContext(ctx, "gRPC request", attrs...)
	}

	return resp, err
}

// Refresh runs every check once and publishes the results.
func (s *Server) Refresh(ctx context.Context) {
	overall := healthpb.HealthCheckResponse_SERVING

	for _, c := range s.checks {
		status := healthpb.HealthCheckResponse_SERVING

		checkCtx, cancel := context.WithTimeout(ctx, s.interval)
		if err := c.Probe(checkCtx); err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = healthpb.HealthCheckResponse_NOT_SERVING
			s.logger.Warn("Health check failed", slog.String("service", c.Service), slog.String("error", err.Error()))
		}
		cancel()

		s.health.SetServingStatus(c.Service, status)
	}

	s.health.SetServingStatus("", overall)
}

// Watch refreshes the statuses every interval until ctx is done.
func (s *Server) Watch(ctx context.Context) {
	s.Refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("gRPC server is starting", slog.String("address", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop marks every service as not serving and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
