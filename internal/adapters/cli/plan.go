package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
)

// NewPlanCommand creates the plan command
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Apply declarative plan files",
	}
	cmd.AddCommand(newPlanImportCommand())
	return cmd
}

func newPlanImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <plan.hcl>",
		Short: "Apply an HCL plan file to the project",
		Long: `Apply an HCL plan file to the project in one step.

The file declares processes with their machines, and input and output pins.
Either everything in the file is applied or nothing is.

Example plan:
  process "recipe" "iron-gear-wheel" {
    machine = "assembling-machine-2"
    modules = ["productivity-module"]
  }
  input  "item:iron-plate"      { limit  = 200 }
  output "item:iron-gear-wheel" { amount = 100 }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*commands.ImportPlanResponse](a, &commands.ImportPlanCommand{
					ProjectRef: ref,
					Path:       args[0],
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Plan applied to %s\n", resp.ProjectID)
				fmt.Fprintf(cmd.OutOrStdout(), "  Processes: %d\n", len(resp.Processes))
				fmt.Fprintf(cmd.OutOrStdout(), "  Inputs:    %d\n", resp.Inputs)
				fmt.Fprintf(cmd.OutOrStdout(), "  Outputs:   %d\n", resp.Outputs)
				return nil
			})
		},
	}
}
