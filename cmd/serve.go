package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamanr/dreamteam/internal/api"
	grpcapi "github.com/adamanr/dreamteam/internal/api/grpc"
	web "github.com/adamanr/dreamteam/internal/api/http"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web application and the gRPC health endpoint",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStores(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	app, err := web.NewServer(web.ServicesFromControllers(newControllers(s)), logger, web.Options{
		SessionTTL:    cfg.Redis.SessionTTL,
		SecureCookies: cfg.Server.SecureCookies,
	})
	if err != nil {
		return fmt.Errorf("load views: %w", err)
	}

	httpServer := api.NewHTTPServer(cfg, api.NewRouter(app, api.NewMetrics(), logger))

	health := grpcapi.NewServer(logger, healthCheckInterval,
		grpcapi.Check{Service: "dreamteam.postgres", Probe: s.db.Ping},
		grpcapi.Check{Service: "dreamteam.redis", Probe: func(ctx context.Context) error {
			return s.redis.Ping(ctx).Err()
		}},
	)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPC.Addr, err)
	}

	errCh := make(chan error, 2)

	go health.Watch(ctx)

	go func() {
		if serveErr := health.Serve(lis); serveErr != nil {
			errCh <- fmt.Errorf("grpc server: %w", serveErr)
		}
	}()

	go func() {
		logger.Info("Server is starting", slog.String("address", cfg.Server.Host))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", serveErr)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-errCh:
		logger.Error("Server failed", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Error shutting down HTTP server", slog.String("error", shutdownErr.Error()))
	}
	health.Stop()

	return err
}
