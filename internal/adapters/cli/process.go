package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// NewProcessCommand creates the process command with subcommands
func NewProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Select and configure processes",
		Long: `Select and configure the processes of a project.

A process is a recipe, a resource or a plant from the project's catalog.

Examples:
  factory-planner process add recipe iron-gear-wheel
  factory-planner process add resource "water *tile"
  factory-planner process configure recipe iron-gear-wheel \
      --machine assembling-machine-2 --module productivity-module \
      --beacon beacon:2:speed-module,speed-module
  factory-planner process remove recipe iron-gear-wheel`,
	}

	cmd.AddCommand(newProcessAddCommand())
	cmd.AddCommand(newProcessRemoveCommand())
	cmd.AddCommand(newProcessConfigureCommand())

	return cmd
}

func newProcessAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <resource|plant|recipe> <name>",
		Short: "Select a process",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcessCommand(cmd, "Added", func(ref string) interface{} {
				return &commands.AddProcessCommand{ProjectRef: ref, Kind: args[0], Name: args[1]}
			})
		},
	}
}

func newProcessRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <resource|plant|recipe> <name>",
		Short: "Deselect a process",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcessCommand(cmd, "Removed", func(ref string) interface{} {
				return &commands.RemoveProcessCommand{ProjectRef: ref, Kind: args[0], Name: args[1]}
			})
		},
	}
}

func newProcessConfigureCommand() *cobra.Command {
	var (
		machine string
		modules []string
		beacons []string
	)

	cmd := &cobra.Command{
		Use:   "configure <resource|plant|recipe> <name>",
		Short: "Set the machine, modules and beacons of a process",
		Long: `Set the machine, modules and beacons of a selected process.
Productivity from modules and beacons is applied on the next solve.

Beacons are given as prototype:count:module[,module...].`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := planning.ProcessSettings{Machine: machine, Modules: modules}
			for _, spec := range beacons {
				b, err := parseBeacon(spec)
				if err != nil {
					return err
				}
				settings.Beacons = append(settings.Beacons, b)
			}

			return runProcessCommand(cmd, "Configured", func(ref string) interface{} {
				return &commands.ConfigureProcessCommand{ProjectRef: ref, Kind: args[0], Name: args[1], Settings: settings}
			})
		},
	}

	cmd.Flags().StringVar(&machine, "machine", "", "Machine prototype running the process")
	cmd.Flags().StringArrayVar(&modules, "module", nil, "Module inserted in the machine (repeatable)")
	cmd.Flags().StringArrayVar(&beacons, "beacon", nil, "Beacon group as prototype:count:modules (repeatable)")
	return cmd
}

func runProcessCommand(cmd *cobra.Command, verb string, build func(ref string) interface{}) error {
	ref, err := resolveProjectRef()
	if err != nil {
		return err
	}
	return withApp(func(a *localApp) error {
		resp, err := send[*commands.ProcessResponse](a, build(ref))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s", verb, resp.Process.Key())
		if resp.Process.Productivity != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), " (productivity +%s%%)", formatAmount(resp.Process.Productivity*100))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n  %d process(es) selected\n", len(resp.Processes))
		return nil
	})
}

// parseBeacon reads "beacon:2:speed-module,speed-module"
func parseBeacon(spec string) (planning.BeaconSettings, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] == "" {
		return planning.BeaconSettings{}, fmt.Errorf("invalid beacon %q (expected prototype:count:modules)", spec)
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil || count < 0 {
		return planning.BeaconSettings{}, fmt.Errorf("invalid beacon count in %q", spec)
	}

	var modules []string
	for _, m := range strings.Split(parts[2], ",") {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	return planning.BeaconSettings{Prototype: parts[0], Count: count, Modules: modules}, nil
}
