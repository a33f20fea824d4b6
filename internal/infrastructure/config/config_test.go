package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "database:\n  path: \":memory:\"\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "simplex", cfg.Solver.Backend)
	assert.Equal(t, 1e-6, cfg.Solver.Tolerance)
	assert.Equal(t, 1e-10, cfg.Solver.PrimitiveTolerance)
	assert.Equal(t, 10*time.Second, cfg.Daemon.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
solver:
  tolerance: 0.001
daemon:
  socket_path: /run/fp.sock
  solve_rate: 2
logging:
  level: debug
  format: json
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 0.001, cfg.Solver.Tolerance)
	assert.Equal(t, "/run/fp.sock", cfg.Daemon.SocketPath)
	assert.Equal(t, 2.0, cfg.Daemon.SolveRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: warn\n")
	t.Setenv("FP_LOGGING_LEVEL", "error")
	t.Setenv("FP_SOLVER_TOLERANCE", "0.5")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 0.5, cfg.Solver.Tolerance)
}

func TestLoadConfig_DatabaseURLSelectsPostgres(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("DATABASE_URL", "postgresql://factory:secret@db:5432/plans")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgresql://factory:secret@db:5432/plans", cfg.Database.URL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown backend", "solver:\n  backend: glpk\n", "Solver.Backend"},
		{"negative tolerance", "solver:\n  tolerance: -1\n", "Solver.Tolerance"},
		{"bad log level", "logging:\n  level: verbose\n", "Logging.Level"},
		{"file output without path", "logging:\n  output: file\n", "Logging.FilePath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	cfg := config.LoadConfigOrDefault(writeConfig(t, "solver:\n  backend: glpk\n"))

	assert.Equal(t, "simplex", cfg.Solver.Backend)
}

func TestUserConfigHandler_DefaultProject(t *testing.T) {
	// Arrange
	handler, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	// Act
	empty, err := handler.Load()
	require.NoError(t, err)
	require.NoError(t, handler.SetDefaultProject("main-base"))
	loaded, err := handler.Load()
	require.NoError(t, err)
	require.NoError(t, handler.ClearDefaultProject())
	cleared, err := handler.Load()
	require.NoError(t, err)

	// Assert
	assert.Empty(t, empty.DefaultProject)
	assert.Equal(t, "main-base", loaded.DefaultProject)
	assert.Empty(t, cleared.DefaultProject)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{"memory", config.DatabaseConfig{Type: "sqlite", Path: ":memory:", BusyTimeout: time.Second}, ":memory:"},
		{"empty sqlite path", config.DatabaseConfig{Type: "sqlite"}, ":memory:"},
		{"sqlite file", config.DatabaseConfig{Type: "sqlite", Path: "/var/lib/fp/planner.db"}, "/var/lib/fp/planner.db"},
		{"sqlite busy timeout", config.DatabaseConfig{Type: "sqlite", Path: "planner.db", BusyTimeout: 5 * time.Second}, "planner.db?_busy_timeout=5000"},
		{"postgres url", config.DatabaseConfig{Type: "postgres", URL: "postgresql://u:p@db:5432/fp"}, "postgresql://u:p@db:5432/fp"},
		{"postgres fields", config.DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "fp", SSLMode: "disable"},
			"host=db port=5432 user=u password=p dbname=fp sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestLoadConfig_SQLiteBusyTimeoutDefault(t *testing.T) {
	path := writeConfig(t, "database:\n  path: "+filepath.Join(t.TempDir(), "planner.db")+"\n")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.False(t, cfg.Database.IsMemory())
}

func TestLoggingConfig_EncodingAndSampling(t *testing.T) {
	assert.Equal(t, "console", config.LoggingConfig{Format: "text"}.Encoding())
	assert.Equal(t, "json", config.LoggingConfig{Format: "json"}.Encoding())
	assert.False(t, config.SamplingConfig{Initial: 10}.Enabled())
	assert.True(t, config.SamplingConfig{Initial: 10, Thereafter: 100}.Enabled())
}
