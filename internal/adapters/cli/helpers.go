package cli

import (
	"fmt"
	"net/url"

	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// resolveProjectRef picks the project a command acts on.
// Priority: --project flag > default from 'project use'.
// An empty result is passed on; the application layer reports it.
func resolveProjectRef() (string, error) {
	if projectRef != "" {
		return projectRef, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no project specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no project specified and failed to load user config: %w", err)
	}
	return userCfg.DefaultProject, nil
}

// resolveSocketPath returns --socket or the configured daemon socket
func resolveSocketPath() string {
	if socketPath != "" {
		return socketPath
	}
	return config.LoadConfigOrDefault(configPath).Daemon.SocketPath
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
