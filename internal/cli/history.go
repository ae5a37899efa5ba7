package cli

import (
	"quadrant-cli/internal/mutate"
	"quadrant-cli/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Archived and deleted task history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "archived",
		Short: "List archived tasks, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": store.ArchivedTasks(db)}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deleted",
		Short: "List deleted tasks, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": store.DeletedTasks(db)}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear-deleted",
		Short: "Purge deleted tasks permanently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			n := mutate.PurgeDeleted(db)
			if n > 0 {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"purged": n}})
		},
	})

	return cmd
}
