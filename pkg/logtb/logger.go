package logtb

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Format string

const (
	FormatPretty = Format("pretty")
	FormatJSON   = Format("json")
)

type Level string

const (
	LevelDebug = Level("debug")
	LevelInfo  = Level("info")
	LevelWarn  = Level("warn")
	LevelError = Level("error")
)

type Options struct {
	Format Format
	Level  Level
}

func NewLogger(opts Options) (*zap.Logger, func()) {

	loggerOpts := zap.NewProductionConfig()
	if opts.Format == FormatPretty {
		loggerOpts = zap.NewDevelopmentConfig()
	}
	loggerOpts.DisableStacktrace = true
	loggerOpts.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(string(opts.Level))
		if err != nil {
			panic(err)
		}
		loggerOpts.Level = level
	}

	logger, err := loggerOpts.Build()
	if err != nil {
		panic(err)
	}

	return logger, func() {
		_ = logger.Sync()
	}
}

type loggerCtxKeyType struct{}

var loggerCtxKey = loggerCtxKeyType{}

// ExtractLogger returns the logger stored in ctx, or a no-op logger.
func ExtractLogger(ctx context.Context) *zap.Logger {
	v, ok := ctx.Value(loggerCtxKey).(*zap.Logger)
	if !ok || v == nil {
		return zap.NewNop()
	}
	return v
}

func InjectLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}
