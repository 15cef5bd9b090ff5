// Package logger is the structured logger shared by both services.
//
// WithCtx returns the request-scoped logger installed by the HTTP logging
// middleware, so every line from a handler carries the request id:
//
//	logger.WithCtx(r.Context()).Info("order created", "order_id", id)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/foodtruck-labs/foodtruck/config"
)

var L *slog.Logger

func init() {
	L = slog.New(NewHandler(os.Stdout, config.AppEnv()))
	slog.SetDefault(L)
}

// NewHandler returns a JSON handler at INFO for production environments and
// a text handler at DEBUG otherwise.
func NewHandler(w io.Writer, env string) slog.Handler {
	switch strings.ToLower(env) {
	case "production", "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Use replaces the base logger with one writing to h.
func Use(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the logger stored by InjectLogger, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx for WithCtx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
