package cli

import (
	"quadrant-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newMatricesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matrices",
		Short: "Work with matrices (task categories)",
	}
	cmd.AddCommand(newMatricesListCmd(app))
	cmd.AddCommand(newMatricesAddCmd(app))
	cmd.AddCommand(newMatricesMergeCmd(app))
	cmd.AddCommand(newMatricesDeleteCmd(app))
	return cmd
}

func newMatricesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"matrices": db.Matrices}})
		},
	}
}

func newMatricesAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an unpinned matrix (id derived from the name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddMatrix(db, nil, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"added": false}})
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"added": true, "matrix": res.Matrix}})
		},
	}
}

func newMatricesMergeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <source-id> <dest-id>",
		Short: "Move all tasks of source into dest and remove source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.MergeMatrixInto(db, nil, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"merged": res.Changed}})
		},
	}
}

func newMatricesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <matrix-id>",
		Short: "Remove a matrix; its tasks are archived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.DeleteMatrixArchiveTasks(db, nil, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": res.Changed}})
		},
	}
}
