// Package observability builds the zap loggers pokebattle commands write to.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/pokebattle/internal/config"
)

// LoggerName prefixes every logger returned by NewLogger.
const LoggerName = "pokebattle"

// NewLogger creates a structured logger from the given logging configuration.
// Logs go to cfg.Output, stderr by default, so they stay out of battle text on stdout.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a logger named LoggerName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	zapCfg, err := formatConfig(cfg.Format)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// formatConfig returns the zap preset for format. Console output is meant for
// a player's terminal and carries no stack traces.
func formatConfig(format string) (zap.Config, error) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), nil
	case "console":
		c := zap.NewDevelopmentConfig()
		c.DisableStacktrace = true
		return c, nil
	default:
		return zap.Config{}, fmt.Errorf("unknown log format %q", format)
	}
}

// ForInvocation returns a child of logger tagged with the command name and a
// fresh invocation ID, so every line one command writes can be grouped.
//
// Postcondition: The returned logger carries "command" and "invocation" fields.
func ForInvocation(logger *zap.Logger, command string) *zap.Logger {
	return logger.With(
		zap.String("command", command),
		zap.String("invocation", uuid.NewString()),
	)
}
