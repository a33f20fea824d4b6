package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/grpc"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	var (
		generateInputs bool
		remote         bool
		timeout        time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute process rates for the project",
		Long: `Compute how fast every selected process must run to meet the pinned outputs
without exceeding the pinned inputs.

With --generate-inputs, materials that no selected process produces are added as
inputs at the smallest amount that works, and saved to the project.

With --remote the solve runs in the planner daemon.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}

			if remote {
				return solveRemote(cmd.OutOrStdout(), ref, generateInputs, timeout)
			}

			return withApp(func(a *localApp) error {
				resp, err := send[*commands.SolveModelResponse](a, &commands.SolveModelCommand{
					ProjectRef:     ref,
					GenerateInputs: generateInputs,
				})
				if err != nil {
					return err
				}
				printSolve(cmd.OutOrStdout(), planning.EncodeResult(resp.Result), machineRows(resp.Machines))
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", mutedStyle.Render(fmt.Sprintf(
					"%d variables, %d constraints, %d LP solves in %s",
					resp.Diagnostics.Variables, resp.Diagnostics.Constraints,
					resp.Diagnostics.SolverCalls, resp.Duration.Round(time.Microsecond))))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&generateInputs, "generate-inputs", false, "Discover and save missing inputs")
	cmd.Flags().BoolVar(&remote, "remote", false, "Solve in the running daemon")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Deadline for a remote solve")
	return cmd
}

func solveRemote(w io.Writer, ref string, generateInputs bool, timeout time.Duration) error {
	client, err := grpc.NewPlannerClient(resolveSocketPath())
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	reply, err := client.Solve(ctx, ref, generateInputs)
	if err != nil {
		return err
	}

	printSolve(w, reply.Result, reply.Machines)
	fmt.Fprintf(w, "\n%s\n", mutedStyle.Render(fmt.Sprintf(
		"%d variables, %d constraints, %d LP solves in %dms (daemon)",
		reply.Variables, reply.Constraints, reply.SolverCalls, reply.DurationMs)))
	return nil
}

func printSolve(w io.Writer, doc planning.ResultDocument, machines []grpc.MachineRow) {
	fmt.Fprint(w, FormatResult(doc))
	if doc.Kind == planning.ResultOneSolution && len(machines) > 0 {
		fmt.Fprintln(w)
		fmt.Fprint(w, FormatMachines(machines))
	}
}
