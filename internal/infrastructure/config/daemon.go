package config

import "time"

// DaemonConfig holds planner daemon configuration
type DaemonConfig struct {
	// Unix socket the gRPC server listens on
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// PID file location, used as a single-instance lock
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Sustained solves per second across all clients
	SolveRate float64 `mapstructure:"solve_rate" validate:"gt=0"`

	// Solves allowed in a burst above SolveRate
	SolveBurst int `mapstructure:"solve_burst" validate:"min=1"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
