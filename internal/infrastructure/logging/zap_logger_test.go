package logging_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/logging"
)

func TestZapLogger_MapsLevelsAndFields(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLoggerFrom(zap.New(core))

	// Act
	logger.Log("debug", "formulated", map[string]interface{}{"variables": 3})
	logger.Log("warning", "spread", nil)
	logger.Log("error", "failed", map[string]interface{}{"reason": "infeasible"})
	logger.Log("whatever", "fallback", nil)

	// Assert
	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(3), entries[0].ContextMap()["variables"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "infeasible", entries[2].ContextMap()["reason"])
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestNewZapLogger_FromConfig(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:    "warn",
		Format:   "json",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "planner.log"),
	}

	logger, err := logging.NewZapLogger(cfg)

	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Zap().Core().Enabled(zapcore.WarnLevel))
}

func TestNewZapLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := logging.NewZapLogger(config.LoggingConfig{Level: "loud", Format: "json", Output: "stderr"})

	assert.Error(t, err)
}

func TestNewZapLogger_TextWithSampling(t *testing.T) {
	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "text",
		Output:   "file",
		FilePath: filepath.Join(t.TempDir(), "planner.log"),
		Sampling: config.SamplingConfig{Initial: 10, Thereafter: 100},
	}

	logger, err := logging.NewZapLogger(cfg)

	require.NoError(t, err)
	assert.True(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))
}
