package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"folio/access"
	"folio/database"
	"folio/models"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	moveFrom int
	moveTo   int
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Inspect and order projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		projects, err := db.ListProjects(cmd.Context(), access.ProjectFilter{})
		if err != nil {
			return err
		}
		return printProjects(cmd.OutOrStdout(), projects)
	},
}

var projectsMoveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move one project to a new position",
	Long: `Move the project at position --from to position --to (both 1-based,
as shown by "folioctl projects list") and persist the new order.

Example:
  folioctl projects move --from 3 --to 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		projects, moved, err := moveProject(cmd.Context(), db, moveFrom, moveTo)
		if err != nil {
			return err
		}
		if !moved {
			fmt.Fprintln(cmd.OutOrStdout(), "Order unchanged.")
		}
		return printProjects(cmd.OutOrStdout(), projects)
	},
}

type projectOrderer interface {
	ListProjects(ctx context.Context, f access.ProjectFilter) ([]models.Project, error)
	ReorderProjects(ctx context.Context, ids []uuid.UUID) error
	InsertActivity(ctx context.Context, entry models.ActivityLog) error
}

// moveProject moves the project at 1-based position from to position to
// and returns the resulting list. A same-position move writes nothing.
func moveProject(ctx context.Context, store projectOrderer, from, to int) ([]models.Project, bool, error) {
	projects, err := store.ListProjects(ctx, access.ProjectFilter{})
	if err != nil {
		return nil, false, err
	}
	if from < 1 || from > len(projects) || to < 1 || to > len(projects) {
		return nil, false, fmt.Errorf("positions must be between 1 and %d", len(projects))
	}

	ids, moved := database.MoveItem(database.ProjectIDs(projects), from-1, to-1)
	if !moved {
		return projects, false, nil
	}

	if err := store.ReorderProjects(ctx, ids); err != nil {
		return nil, false, err
	}

	// Audit failures do not undo a completed reorder.
	_ = store.InsertActivity(ctx, models.ActivityLog{
		Action:       models.ActionReorder,
		ResourceType: models.ResourceProject,
		ResourceID:   ids[to-1],
		UserID:       "folioctl",
		Details:      map[string]any{"from": from, "to": to},
	})

	projects, err = store.ListProjects(ctx, access.ProjectFilter{})
	if err != nil {
		return nil, false, err
	}
	return projects, true, nil
}

func printProjects(out io.Writer, projects []models.Project) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tTITLE\tTYPE\tSTATUS\tPRIVATE")
	for i, p := range projects {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n", i+1, p.ID, p.Title, p.Type, p.Status, p.IsPrivate)
	}
	return w.Flush()
}

func init() {
	projectsMoveCmd.Flags().IntVar(&moveFrom, "from", 0, "current position (required)")
	projectsMoveCmd.Flags().IntVar(&moveTo, "to", 0, "new position (required)")
	_ = projectsMoveCmd.MarkFlagRequired("from")
	_ = projectsMoveCmd.MarkFlagRequired("to")

	projectsCmd.AddCommand(projectsListCmd, projectsMoveCmd)
	rootCmd.AddCommand(projectsCmd)
}
