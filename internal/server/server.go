package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	v1 "github.com/goto/signoff/api/handler/v1"
	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/opentelemetry"
	"github.com/goto/signoff/plugins/notifiers"
)

// RunServer serves the HTTP API until the process receives SIGINT or SIGTERM
func RunServer(config *Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.NewCtxLogger(config.LogLevel, []log.ContextKey{log.RequestIDKey, log.ActorKey})

	if config.Telemetry.Enabled {
		shutdownOtel, err := opentelemetry.Init(ctx, config.Telemetry)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownOtel(); err != nil {
				logger.Error(ctx, "otel shutdown", "error", err)
			}
		}()
	}

	notifier, err := notifiers.NewClient(&config.Notifier, logger)
	if err != nil {
		return err
	}

	services, err := InitServices(ServiceDeps{
		Config:   config,
		Logger:   logger,
		Notifier: notifier,
	})
	if err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Error(ctx, "closing services", "error", err)
		}
	}()

	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	NewAPIServer(services, config, logger).Routes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Port),
		Handler:           otelhttp.NewHandler(r, "signoff.http"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server started", "port", config.Port, "store_driver", config.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	logger.Info(ctx, "server stopped")
	return nil
}

// NewAPIServer binds the v1 handlers to the services
func NewAPIServer(services *Services, config *Config, logger log.Logger) *v1.Server {
	return v1.NewServer(v1.ServerDeps{
		Workflow:         services.WorkflowService,
		Approvals:        services.ApprovalService,
		Policies:         services.PolicyService,
		Comments:         services.CommentService,
		Events:           services.EventService,
		Documents:        services.Documents,
		Logger:           logger,
		AuthHeaderKey:    config.Auth.Default.HeaderKey,
		TraceIDHeaderKey: config.AuditLogTraceIDHeaderKey,
	})
}
