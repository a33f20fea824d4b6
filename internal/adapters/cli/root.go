package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	projectRef string
	socketPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factory-planner",
		Short: "Factory Planner - compute production rates for a factory",
		Long: `Factory Planner solves production chains: pick the recipes, resources and plants
you want to run, pin the outputs you need and the inputs you can supply, and it
computes how fast every process has to run.

Projects are stored locally. Solves can also be sent to a running planner daemon.

Examples:
  factory-planner project create base --catalog data-raw-dump.json
  factory-planner project use base
  factory-planner process add recipe iron-gear-wheel
  factory-planner output pin item:iron-gear-wheel 10
  factory-planner solve --generate-inputs
  factory-planner plan import gears.hcl
  factory-planner solve --remote`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/factory-planner)")
	rootCmd.PersistentFlags().StringVarP(&projectRef, "project", "p", "",
		"Project id or name (default: the project set with 'project use')")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "",
		"Path to daemon Unix socket (default: daemon.socket_path from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewProjectCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewProcessCommand())
	rootCmd.AddCommand(NewPinCommand("input"))
	rootCmd.AddCommand(NewPinCommand("output"))
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewSolveCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewDaemonCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
