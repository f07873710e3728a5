package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Env         string
	Level       zerolog.Level
	WarnStack   bool
	Output      io.Writer
	// Console switches to human-readable output. STOREFRONT_LOG_FORMAT=console
	// enables it when unset.
	Console bool
}

// Logger writes zerolog entries enriched with fields carried on the context.
type Logger struct {
	base      zerolog.Logger
	warnStack bool
}

type ctxKey struct{}

func New(opts Options) *Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Console || strings.EqualFold(os.Getenv("STOREFRONT_LOG_FORMAT"), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	fields := zerolog.New(out).Level(opts.Level).With().Timestamp().Str("service", opts.ServiceName)
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	return &Logger{base: fields.Logger(), warnStack: opts.WarnStack}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// ParseLevel maps a config string onto a zerolog level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Named returns a logger whose entries carry component=name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{base: l.base.With().Str("component", name).Logger(), warnStack: l.warnStack}
}

func (l *Logger) from(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return entry
		}
	}
	return l.base
}

func (l *Logger) with(ctx context.Context, build func(zerolog.Context) zerolog.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, build(l.from(ctx).With()).Logger())
}

func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.with(ctx, func(c zerolog.Context) zerolog.Context { return c.Interface(key, value) })
}

func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	return l.with(ctx, func(c zerolog.Context) zerolog.Context { return c.Fields(fields) })
}

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, "request_id", requestID)
}

func (l *Logger) WithUserID(ctx context.Context, userID string) context.Context {
	return l.WithField(ctx, "user_id", userID)
}

func (l *Logger) WithOperation(ctx context.Context, op string) context.Context {
	return l.WithField(ctx, "operation", op)
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.DebugLevel, msg, nil, false)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.InfoLevel, msg, nil, false)
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	l.emit(ctx, zerolog.WarnLevel, msg, nil, l.warnStack)
}

// Error always records the goroutine stack.
func (l *Logger) Error(ctx context.Context, msg string, err error) {
	l.emit(ctx, zerolog.ErrorLevel, msg, err, true)
}

func (l *Logger) emit(ctx context.Context, level zerolog.Level, msg string, err error, stack bool) {
	entry := l.from(ctx)
	event := entry.WithLevel(level)
	if event == nil {
		return
	}
	if err != nil {
		event = event.Err(err)
	}
	if stack {
		event = event.Str("stack", strings.TrimSpace(string(debug.Stack())))
	}
	event.Msg(msg)
}
