// Package logging builds the application's zap logger and carries it through
// request contexts.
package logging

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// Options configures New.
type Options struct {
	Level  string // debug | info | warn | error
	Format Format
	Debug  bool // development mode: console, debug level, caller + stack traces
}

// New builds a logger. Debug wins over Level and Format.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		if opts.Level != "" {
			lvl, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
			if err != nil {
				return nil, fmt.Errorf("logging: %w", err)
			}
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		switch opts.Format {
		case "", FormatJSON:
		case FormatConsole:
			cfg.Encoding = string(FormatConsole)
			cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		default:
			return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
		}
	}
	return cfg.Build()
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or fallback, or a no-op
// logger.
func FromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

// Middleware logs one line per request and stores a request-scoped logger
// (tagged with chi's request id) in the request context.
func Middleware(l *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := l
			if id := middleware.GetReqID(r.Context()); id != "" {
				reqLog = l.With(zap.String("request_id", id))
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(WithContext(r.Context(), reqLog)))

			reqLog.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}
