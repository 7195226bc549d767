// Package logger provides a zerolog wrapper with opinionated defaults and
// request-scoped logging support
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the logger
type Options struct {
	Level      string
	Format     string
	Service    string
	Component  string
	Writer     io.Writer
	WithCaller bool
}

// FromEnv builds Options straight from LOG_* env vars (config would introduce a cycle)
func FromEnv() Options {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	return Options{
		Level:      strings.ToLower(get("LEVEL", "debug")),
		Format:     strings.ToLower(get("FORMAT", "console")),
		Service:    get("SERVICE", ""),
		Component:  get("COMPONENT", ""),
		WithCaller: get("CALLER", "") == "1" || strings.EqualFold(get("CALLER", ""), "true"),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Logger is the project-wide logging type - today it's just a zerolog.Logger, but it can be swapped later
type Logger = zerolog.Logger

// Get returns the process-wide root logger as a pointer
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, safe to call once
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl := parseLevel(opt.Level)

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		ctx := zerolog.New(w).Level(lvl).With().Timestamp()
		if opt.Service != "" {
			ctx = ctx.Str("service", opt.Service)
		}
		if opt.Component != "" {
			ctx = ctx.Str("component", opt.Component)
		}

		log := ctx.Logger()
		if opt.WithCaller {
			log = log.With().Caller().Logger()
		}

		root.Store(&log)
		inited.Store(true)
	})
}

// parseLevel supports string-only levels
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.DebugLevel
	}
}

type ctxKey struct{ name string }

var (
	keyRequestID = ctxKey{"req_id"}
	keyUserID    = ctxKey{"user_id"}
	keyQueryID   = ctxKey{"query_id"}
)

// WithRequest annotates ctx with common request-scoped fields
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// WithQuery annotates ctx with the query id driving the current pipeline run
func WithQuery(ctx context.Context, queryID string) context.Context {
	if queryID != "" {
		ctx = context.WithValue(ctx, keyQueryID, queryID)
	}
	return ctx
}

// C returns a child logger enriched from ctx (request_id, user_id, query_id)
func C(ctx context.Context) *Logger {
	l := Get()
	builder := l.With()
	for _, kv := range []struct {
		key   ctxKey
		field string
	}{
		{keyRequestID, "request_id"},
		{keyUserID, "user_id"},
		{keyQueryID, "query_id"},
	} {
		if v := ctx.Value(kv.key); v != nil {
			if s, ok := v.(string); ok && s != "" {
				builder = builder.Str(kv.field, s)
			}
		}
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
