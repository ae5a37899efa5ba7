package cli

import (
	"fmt"
	"strconv"
	"strings"

	"quadrant-cli/internal/model"
	"quadrant-cli/internal/mutate"
	"quadrant-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksArchiveCmd(app))
	cmd.AddCommand(newTasksUnarchiveCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var matrixID string
	var urgency string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (live only unless --all)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var u model.Urgency
			if urgency != "" {
				v, ok := model.ParseUrgency(urgency)
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid urgency: %q (expected High|Medium|Low|None)", urgency))
				}
				u = v
			}
			var out []model.Task
			for _, t := range db.Tasks {
				if !all && !t.Live() {
					continue
				}
				if matrixID != "" && t.MatrixID != matrixID {
					continue
				}
				if u != "" && t.Urgency != u {
					continue
				}
				out = append(out, t)
			}
			if out == nil {
				out = []model.Task{}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": out}})
		},
	}

	cmd.Flags().StringVar(&matrixID, "matrix", "", "Only tasks in this matrix id")
	cmd.Flags().StringVar(&urgency, "urgency", "", "Only tasks in this quadrant (High|Medium|Low|None)")
	cmd.Flags().BoolVar(&all, "all", false, "Include archived and deleted tasks")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(id)
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"task": t}})
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	var matrixID string
	var urgency string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task at the bottom of its quadrant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, ok := model.ParseUrgency(urgency)
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid urgency: %q (expected High|Medium|Low|None)", urgency))
			}
			res, err := mutate.AddTask(db, args[0], matrixID, u)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"added": false}})
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"added": true, "task": res.Task}})
		},
	}

	cmd.Flags().StringVar(&matrixID, "matrix", store.DefaultMatrixID, "Matrix id")
	cmd.Flags().StringVar(&urgency, "urgency", string(model.UrgencyMedium), "Urgency (High|Medium|Low|None)")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	return taskOpCmd(app, "done <task-id>", "Toggle a task between Not Done and Completed",
		func(db *store.DB, id int64) (mutate.TaskResult, error) {
			return mutate.ToggleComplete(db, id)
		})
}

func newTasksArchiveCmd(app *App) *cobra.Command {
	return taskOpCmd(app, "archive <task-id>", "Archive a task",
		func(db *store.DB, id int64) (mutate.TaskResult, error) {
			return mutate.ArchiveTask(db, id)
		})
}

func newTasksUnarchiveCmd(app *App) *cobra.Command {
	return taskOpCmd(app, "unarchive <task-id>", "Return an archived task to Not Done",
		func(db *store.DB, id int64) (mutate.TaskResult, error) {
			return mutate.UnarchiveTask(db, id)
		})
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return taskOpCmd(app, "delete <task-id>", "Soft-delete a task",
		func(db *store.DB, id int64) (mutate.TaskResult, error) {
			return mutate.DeleteTask(db, nil, id)
		})
}

func newTasksMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task-id> <urgency>",
		Short: "Move a task to another quadrant (lands at the bottom)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			u, ok := model.ParseUrgency(args[1])
			if !ok {
				return writeErr(cmd, fmt.Errorf("invalid urgency: %q (expected High|Medium|Low|None)", args[1]))
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(id)
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			if t.Urgency == u {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": false}})
			}
			old := t.Urgency
			t.Order = store.NextOrder(db.Tasks, t.MatrixID, u)
			t.Urgency = u
			store.Renormalize(db.Tasks, t.MatrixID, old)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": true, "task": t}})
		},
	}
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <task-id> <text>",
		Short: "Replace a task's text (empty text is a no-op)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.EditTaskText(db, id, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"edited": res.Changed, "task": res.Task}})
		},
	}
	return cmd
}

func taskOpCmd(app *App, use, short string, op func(*store.DB, int64) (mutate.TaskResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := op(db, id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"changed": res.Changed, "task": res.Task}})
		},
	}
}

func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %q", s)
	}
	return id, nil
}
