package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/grpc"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/pidfile"
)

// NewDaemonCommand creates the daemon command
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Inspect the planner daemon",
	}
	cmd.AddCommand(newDaemonStatusCommand())
	return cmd
}

func newDaemonStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the daemon is running and responsive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfigOrDefault(configPath)
			out := cmd.OutOrStdout()

			pid, err := pidfile.New(cfg.Daemon.PIDFile).Status()
			if errors.Is(err, pidfile.ErrNotRunning) {
				fmt.Fprintln(out, errorStyle.Render("✗ Daemon is not running"))
				fmt.Fprintf(out, "  PID file: %s\n", cfg.Daemon.PIDFile)
				return nil
			}
			if err != nil {
				return err
			}

			client, err := grpc.NewPlannerClient(resolveSocketPath())
			if err != nil {
				return fmt.Errorf("failed to connect to daemon: %w", err)
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			health, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("daemon (PID %d) is not responding: %w", pid, err)
			}

			fmt.Fprintln(out, successStyle.Render("✓ Daemon is healthy"))
			fmt.Fprintf(out, "  PID:     %d\n", pid)
			fmt.Fprintf(out, "  Status:  %s\n", health.Status)
			fmt.Fprintf(out, "  Version: %s\n", health.Version)
			fmt.Fprintf(out, "  Uptime:  %s\n", health.Uptime.Round(time.Second))
			fmt.Fprintf(out, "  Solves:  %d\n", health.Solves)
			return nil
		},
	}
}
