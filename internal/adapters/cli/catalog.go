package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/grpc"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage a project's catalog",
	}
	cmd.AddCommand(newCatalogImportCommand())
	return cmd
}

func newCatalogImportCommand() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "import <dump.json>",
		Short: "Replace the project's catalog with a game data dump",
		Long: `Replace the project's catalog with a game data dump.

The import is refused if a selected process does not exist in the new catalog.
With --remote the daemon loads the file, so it must be readable by the daemon;
the path is made absolute first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := resolveProjectRef()
			if err != nil {
				return err
			}

			if remote {
				path, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				client, err := grpc.NewPlannerClient(resolveSocketPath())
				if err != nil {
					return fmt.Errorf("failed to connect to daemon: %w", err)
				}
				defer client.Close()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				reply, err := client.ReloadCatalog(ctx, ref, path)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), reply.ProjectID, reply.Summary)
				return nil
			}

			return withApp(func(a *localApp) error {
				resp, err := send[*commands.ImportCatalogResponse](a, &commands.ImportCatalogCommand{
					ProjectRef: ref,
					Path:       args[0],
				})
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), resp.ProjectID, resp.Summary)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Reload the catalog inside the running daemon")
	return cmd
}

func printSummary(w io.Writer, projectID string, s catalog.Summary) {
	fmt.Fprintf(w, "✓ Catalog imported into %s\n", projectID)
	fmt.Fprintf(w, "  Items:             %d\n", s.Items)
	fmt.Fprintf(w, "  Fluids:            %d\n", s.Fluids)
	fmt.Fprintf(w, "  Recipes:           %d\n", s.Recipes)
	fmt.Fprintf(w, "  Resources:         %d\n", s.Resources)
	fmt.Fprintf(w, "  Plants:            %d\n", s.Plants)
	fmt.Fprintf(w, "  Crafting machines: %d\n", s.CraftingMachines)
	fmt.Fprintf(w, "  Mining drills:     %d\n", s.MiningDrills)
	fmt.Fprintf(w, "  Modules:           %d\n", s.Modules)
	fmt.Fprintf(w, "  Beacons:           %d\n", s.Beacons)
}
