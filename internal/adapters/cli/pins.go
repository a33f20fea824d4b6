package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/queries"
)

// NewPinCommand creates the input or output command; direction is "input" or "output"
func NewPinCommand(direction string) *cobra.Command {
	short := "Pin target output rates"
	if direction == "input" {
		short = "Pin input supply limits"
	}

	cmd := &cobra.Command{
		Use:   direction,
		Short: short,
		Long: fmt.Sprintf(`Manage the pinned %[1]ss of a project.

Materials are written as item:<name> or fluid:<name>; amounts are per second.

Examples:
  factory-planner %[1]s pin item:iron-plate 20
  factory-planner %[1]s get item:iron-plate
  factory-planner %[1]s unpin item:iron-plate`, direction),
	}

	cmd.AddCommand(newPinSetCommand(direction))
	cmd.AddCommand(newPinUnpinCommand(direction))
	cmd.AddCommand(newPinGetCommand(direction))

	return cmd
}

func newPinSetCommand(direction string) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <material> <amount>",
		Short: "Pin a material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*commands.PinResponse](a, &commands.PinMaterialCommand{
					ProjectRef: ref,
					Direction:  direction,
					Material:   args[0],
					Amount:     amount,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Pinned %s %s at %s/s\n", resp.Direction, resp.Material.ID(), formatAmount(resp.Amount))
				return nil
			})
		},
	}
}

func newPinUnpinCommand(direction string) *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <material>",
		Short: "Remove a pin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*commands.PinResponse](a, &commands.UnpinMaterialCommand{
					ProjectRef: ref,
					Direction:  direction,
					Material:   args[0],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Unpinned %s %s\n", resp.Direction, resp.Material.ID())
				return nil
			})
		},
	}
}

func newPinGetCommand(direction string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <material>",
		Short: "Show the pinned amount of a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*queries.GetPinResponse](a, &queries.GetPinQuery{
					ProjectRef: ref,
					Direction:  direction,
					Material:   args[0],
				})
				if err != nil {
					return err
				}
				if !resp.Pinned {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is not pinned as %s\n", args[0], direction)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s/s\n", resp.Pin.Key.ID(), formatAmount(resp.Pin.Amount))
				return nil
			})
		},
	}
}
