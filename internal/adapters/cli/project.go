package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/application/project/commands"
	"github.com/andrescamacho/factory-planner-go/internal/application/project/queries"
	"github.com/andrescamacho/factory-planner-go/internal/infrastructure/config"
)

// NewProjectCommand creates the project command with subcommands
func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage planning projects",
		Long: `Manage planning projects.

A project holds a catalog snapshot, the selected processes with their machines,
and the pinned inputs and outputs.

Examples:
  factory-planner project create base --catalog data-raw-dump.json
  factory-planner project list
  factory-planner project show base
  factory-planner project use base
  factory-planner project delete base`,
	}

	cmd.AddCommand(newProjectCreateCommand())
	cmd.AddCommand(newProjectListCommand())
	cmd.AddCommand(newProjectShowCommand())
	cmd.AddCommand(newProjectDeleteCommand())
	cmd.AddCommand(newProjectUseCommand())

	return cmd
}

func newProjectCreateCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *localApp) error {
				resp, err := send[*commands.CreateProjectResponse](a, &commands.CreateProjectCommand{
					Name:        args[0],
					CatalogPath: catalogPath,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project %s (%s)\n", resp.Project.Name(), resp.Project.ID())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Game data dump to seed the catalog from")
	return cmd
}

func newProjectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *localApp) error {
				resp, err := send[*queries.ListProjectsResponse](a, &queries.ListProjectsQuery{})
				if err != nil {
					return err
				}

				t := newTable("Projects", "ID", "Name", "Processes", "Updated")
				for _, p := range resp.Projects {
					t.addRow(p.ID(), p.Name(), fmt.Sprintf("%d", p.ProcessCount()),
						p.UpdatedAt().Format("2006-01-02 15:04"))
				}
				fmt.Fprint(cmd.OutOrStdout(), t.render())
				return nil
			})
		},
	}
}

func newProjectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project]",
		Short: "Show a project's processes and pins",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := refFromArgs(args)
			if err != nil {
				return err
			}
			return withApp(func(a *localApp) error {
				resp, err := send[*queries.GetProjectResponse](a, &queries.GetProjectQuery{ProjectRef: ref})
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), FormatProject(resp.Project))
				return nil
			})
		},
	}
}

func newProjectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and its solve history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *localApp) error {
				resp, err := send[*commands.DeleteProjectResponse](a, &commands.DeleteProjectCommand{ProjectRef: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted project %s\n", resp.ProjectID)
				return clearDefaultIf(args[0], resp.ProjectID)
			})
		},
	}
}

func newProjectUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <project>",
		Short: "Set the default project",
		Long: `Set the project used when --project is not given.
The choice is stored in ~/.factory-planner/config.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *localApp) error {
				// Verify the project exists before storing it
				resp, err := send[*queries.GetProjectResponse](a, &queries.GetProjectQuery{ProjectRef: args[0]})
				if err != nil {
					return err
				}

				userConfigHandler, err := config.NewUserConfigHandler()
				if err != nil {
					return fmt.Errorf("failed to create user config handler: %w", err)
				}
				if err := userConfigHandler.SetDefaultProject(resp.Project.ID()); err != nil {
					return fmt.Errorf("failed to set default project: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Default project set to %s (%s)\n", resp.Project.Name(), resp.Project.ID())
				return nil
			})
		},
	}
}

// refFromArgs uses the positional project argument when given
func refFromArgs(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return resolveProjectRef()
}

// clearDefaultIf forgets the default project when it was just deleted
func clearDefaultIf(refs ...string) error {
	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return nil
	}
	for _, ref := range refs {
		if ref != "" && userCfg.DefaultProject == ref {
			return userConfigHandler.ClearDefaultProject()
		}
	}
	return nil
}
