package logging

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// ZapLogger adapts a zap logger to the application Logger port
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger builds a zap logger from the logging configuration
func NewZapLogger(cfg config.LoggingConfig) (*ZapLogger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Encoding() == "console" {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Development = false
	}
	zcfg.Encoding = cfg.Encoding()

	zcfg.Sampling = nil
	if cfg.Sampling.Enabled() {
		zcfg.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Output {
	case "stdout":
		zcfg.OutputPaths = []string{"stdout"}
	case "file":
		zcfg.OutputPaths = []string{cfg.FilePath}
	default:
		zcfg.OutputPaths = []string{"stderr"}
	}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.DisableCaller = !cfg.IncludeCaller
	zcfg.DisableStacktrace = !cfg.IncludeStacktrace

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &ZapLogger{logger: logger}, nil
}

// NewZapLoggerFrom wraps an existing zap logger
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger}
}

// Log writes one entry. Unknown levels are logged at info.
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, metadata[k]))
	}

	switch level {
	case "debug":
		l.logger.Debug(message, fields...)
	case "warn", "warning":
		l.logger.Warn(message, fields...)
	case "error":
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}

// Zap exposes the underlying logger
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
