package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const DEFAULT_LOG_LEVEL = "info"

// ParseLevel maps debug, info, warn and error to zap levels. Empty input is info.
func ParseLevel(level string) (zapcore.Level, error) {
	raw := strings.ToLower(strings.TrimSpace(level))
	if raw == "" {
		raw = DEFAULT_LOG_LEVEL
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New builds a JSON production logger at the given level.
func New(level string) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(l)
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
