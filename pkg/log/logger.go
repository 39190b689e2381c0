package log

import (
	"context"
	"errors"
	"io"
	"sort"

	saltLog "github.com/goto/salt/log"
)

// Logger writes leveled messages followed by alternating key/value pairs.
// Implementations append the values of configured context keys.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	Fatal(ctx context.Context, msg string, args ...interface{})

	// Level is the lowest level that gets written
	Level() string
	Writer() io.Writer
}

// ContextKey is the type of the context values copied into every log line.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	ActorKey     ContextKey = "actor"
)

type LoggerOption func(*CtxLogger)
type metadataContextKey struct{}

type CtxLogger struct {
	log  saltLog.Logger
	keys []ContextKey
}

// NewCtxLoggerWithSaltLogger wraps an existing salt logger so that context values are attached to each entry
func NewCtxLoggerWithSaltLogger(log saltLog.Logger, ctxKeys []ContextKey, opts ...LoggerOption) *CtxLogger {
	ctxLogger := &CtxLogger{log: log, keys: ctxKeys}
	for _, o := range opts {
		o(ctxLogger)
	}
	return ctxLogger
}

// NewCtxLogger returns a logrus backed logger that will add context values to the log message
func NewCtxLogger(logLevel string, ctxKeys []ContextKey, opts ...LoggerOption) *CtxLogger {
	saltLogger := saltLog.NewLogrus(saltLog.LogrusWithLevel(logLevel))
	return NewCtxLoggerWithSaltLogger(saltLogger, ctxKeys, opts...)
}

// WithKeys appends extra context keys on top of the ones given at construction.
func WithKeys(keys ...ContextKey) LoggerOption {
	return func(l *CtxLogger) {
		l.keys = append(l.keys, keys...)
	}
}

func (l *CtxLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log.Debug(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.Info(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.Warn(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.Error(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Fatal(ctx context.Context, msg string, args ...interface{}) {
	l.log.Fatal(msg, l.addCtxToArgs(ctx, args)...)
}

func (l *CtxLogger) Level() string {
	return l.log.Level()
}

func (l *CtxLogger) Writer() io.Writer {
	return l.log.Writer()
}

// addCtxToArgs appends configured context values and request metadata as key/value pairs
func (l *CtxLogger) addCtxToArgs(ctx context.Context, args []interface{}) []interface{} {
	if ctx == nil {
		return args
	}

	for _, key := range l.keys {
		if val, ok := ctx.Value(key).(string); ok && val != "" {
			args = append(args, string(key), val)
		}
	}

	if md, ok := ctx.Value(metadataContextKey{}).(map[string]interface{}); ok {
		keys := make([]string, 0, len(md))
		for k := range md {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, k, md[k])
		}
	}

	return args
}

// WithMetadata attaches key/value pairs that every logger call using ctx will include.
func WithMetadata(ctx context.Context, md map[string]interface{}) (context.Context, error) {
	existingMetadata := ctx.Value(metadataContextKey{})
	if existingMetadata == nil {
		return context.WithValue(ctx, metadataContextKey{}, md), nil
	}

	mapMd, ok := existingMetadata.(map[string]interface{})
	if !ok {
		return nil, errors.New("failed to cast existing metadata to map[string]interface{} type")
	}
	merged := make(map[string]interface{}, len(mapMd)+len(md))
	for k, v := range mapMd {
		merged[k] = v
	}
	for k, v := range md {
		merged[k] = v
	}

	return context.WithValue(ctx, metadataContextKey{}, merged), nil
}
