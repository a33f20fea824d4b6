package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/queries"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent solves of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*queries.ListSolveRunsResponse](a, &queries.ListSolveRunsQuery{
					ProjectRef: ref,
					Limit:      limit,
				})
				if err != nil {
					return err
				}

				t := newTable("Solve history", "When", "Outcome", "Generate", "LP solves", "Duration")
				for _, run := range resp.Runs {
					outcome := string(run.Outcome)
					if run.Reason != "" {
						outcome += ": " + run.Reason
					}
					t.addRow(
						run.SolvedAt.Format("2006-01-02 15:04:05"),
						outcome,
						fmt.Sprintf("%t", run.GenerateInputs),
						fmt.Sprintf("%d", run.SolverCalls),
						run.Duration.String(),
					)
				}
				fmt.Fprint(cmd.OutOrStdout(), t.render())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	return cmd
}
