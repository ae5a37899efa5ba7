package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quadrant-cli/internal/config"
	"quadrant-cli/internal/format"
	"quadrant-cli/internal/store"
	"quadrant-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quadrant",
		Short:        "Eisenhower-matrix task organizer (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  quadrant

  # Scriptable commands
  quadrant tasks add "Prepare quarterly review" --matrix work --urgency High
  quadrant tasks list --matrix work

  # Move everything between machines by file
  quadrant export backup.json
  quadrant import backup.json
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("QUADRANT_DIR", ""), "Path to store dir (advanced: overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("QUADRANT_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("QUADRANT_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newMatricesCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(s, db, cfg)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if app.Workspace == "" {
			app.Workspace = "default"
		}
		d, err := store.WorkspaceDir(app.Workspace)
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func loadConfig() (config.Config, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return config.Config{}, err
	}
	return config.LoadOrCreate(filepath.Join(dir, config.DefaultConfigFileName))
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
