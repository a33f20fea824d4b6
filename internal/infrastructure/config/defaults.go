package config

import (
	"os"
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database: a local sqlite file unless postgres is configured
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(stateDir(), "planner.db")
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = 5 * time.Second
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.User == "" {
			cfg.Database.User = "factory"
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "factory_planner"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Solver
	if cfg.Solver.Backend == "" {
		cfg.Solver.Backend = "simplex"
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = 1e-6
	}
	if cfg.Solver.PrimitiveTolerance == 0 {
		cfg.Solver.PrimitiveTolerance = 1e-10
	}

	// Daemon
	if cfg.Daemon.SocketPath == "" {
		cfg.Daemon.SocketPath = "/tmp/factory-planner-daemon.sock"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/factory-planner-daemon.pid"
	}
	if cfg.Daemon.SolveRate == 0 {
		cfg.Daemon.SolveRate = 5
	}
	if cfg.Daemon.SolveBurst == 0 {
		cfg.Daemon.SolveBurst = 10
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 10 * time.Second
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// stateDir is ~/.factory-planner, or the working directory when there is no home
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".factory-planner")
}
