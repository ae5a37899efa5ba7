package cli

import (
	"fmt"
	"os"

	"quadrant-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the full matrix/task collection as JSON (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := store.MarshalExport(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			if err := os.WriteFile(args[0], append(b, '\n'), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"exported": true, "file": args[0]}})
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace state from an exported JSON file (all-or-nothing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			// Parse before touching anything: a bad file must leave the
			// existing workspace state untouched.
			db, err := store.ParseImport(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, s, lerr := loadDB(app)
			if lerr != nil {
				return writeErr(cmd, lerr)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"imported": true,
				"matrices": len(db.Matrices),
				"tasks":    len(db.Tasks),
			}})
		},
	}
}
