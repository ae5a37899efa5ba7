package mutate

import (
	"fmt"
	"strings"

	"quadrant-cli/internal/store"
)

// EditSession is the single inline-edit draft buffer. Only one task is
// editable at a time; starting a new session replaces any previous one.
// The draft never touches the task until Commit.
type EditSession struct {
	TaskID int64
	Draft  string

	active bool
}

func (e *EditSession) Active() bool {
	return e != nil && e.active
}

// Start captures the task's current text into the draft buffer.
func (e *EditSession) Start(db *store.DB, id int64) error {
	t, ok := db.FindTask(id)
	if !ok {
		return NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	e.TaskID = id
	e.Draft = t.Text
	e.active = true
	return nil
}

func (e *EditSession) Change(text string) {
	if e.active {
		e.Draft = text
	}
}

// Cancel discards the draft without mutating the task.
func (e *EditSession) Cancel() {
	e.TaskID = 0
	e.Draft = ""
	e.active = false
}

// Commit writes the trimmed draft to the task. An empty draft falls back to
// cancel semantics: the original text is retained and nothing changes.
func (e *EditSession) Commit(db *store.DB) (TaskResult, error) {
	if !e.Active() {
		return TaskResult{}, nil
	}
	id := e.TaskID
	text := strings.TrimSpace(e.Draft)
	e.Cancel()
	if text == "" {
		return TaskResult{}, nil
	}
	t, ok := db.FindTask(id)
	if !ok {
		return TaskResult{}, NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	if t.Text == text {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.Text = text
	return TaskResult{Task: t, Changed: true}, nil
}

// EditTaskText is the one-shot CLI path: start, change, commit.
func EditTaskText(db *store.DB, id int64, text string) (TaskResult, error) {
	var sess EditSession
	if err := sess.Start(db, id); err != nil {
		return TaskResult{}, err
	}
	sess.Change(text)
	return sess.Commit(db)
}
