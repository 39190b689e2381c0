package log_test

import (
	"context"
	"testing"

	"github.com/goto/signoff/pkg/log"
	"github.com/goto/signoff/pkg/log/mocks"
)

func TestCtxLogger(t *testing.T) {
	t.Run("should append configured context values to the args", func(t *testing.T) {
		saltLogger := mocks.NewSaltLogger(t)
		logger := log.NewCtxLoggerWithSaltLogger(saltLogger, []log.ContextKey{log.RequestIDKey})

		ctx := context.WithValue(context.Background(), log.RequestIDKey, "req-1")
		saltLogger.On("Info", "approved", "request", "abc", "request_id", "req-1").Once()

		logger.Info(ctx, "approved", "request", "abc")
	})

	t.Run("should skip keys missing from context", func(t *testing.T) {
		saltLogger := mocks.NewSaltLogger(t)
		logger := log.NewCtxLoggerWithSaltLogger(saltLogger, []log.ContextKey{log.RequestIDKey}, log.WithKeys(log.ActorKey))

		ctx := context.WithValue(context.Background(), log.ActorKey, "ana@example.com")
		saltLogger.On("Error", "failed", "actor", "ana@example.com").Once()

		logger.Error(ctx, "failed")
	})

	t.Run("should append metadata sorted by key", func(t *testing.T) {
		saltLogger := mocks.NewSaltLogger(t)
		logger := log.NewCtxLoggerWithSaltLogger(saltLogger, nil)

		ctx, err := log.WithMetadata(context.Background(), map[string]interface{}{"model": "purchase.order"})
		if err != nil {
			t.Fatal(err)
		}
		ctx, err = log.WithMetadata(ctx, map[string]interface{}{"document_id": "PO-1"})
		if err != nil {
			t.Fatal(err)
		}
		saltLogger.On("Debug", "loaded", "document_id", "PO-1", "model", "purchase.order").Once()

		logger.Debug(ctx, "loaded")
	})
}
