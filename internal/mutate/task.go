package mutate

import (
	"fmt"
	"strings"
	"time"

	"quadrant-cli/internal/model"
	"quadrant-cli/internal/store"
)

type TaskResult struct {
	Task    *model.Task
	Changed bool
}

// AddTask appends a task at the bottom of its (matrix, urgency) quadrant.
// Whitespace-only text is a silent no-op. Callers are responsible for
// saving db and resetting their draft (text cleared, urgency back to
// Medium, matrix kept).
func AddTask(db *store.DB, text, matrixID string, urgency model.Urgency) (TaskResult, error) {
	text = strings.TrimSpace(text)
	if db == nil || text == "" {
		return TaskResult{}, nil
	}
	if _, ok := db.FindMatrix(matrixID); !ok {
		return TaskResult{}, NotFoundError{Kind: "matrix", ID: matrixID}
	}
	now := time.Now().UTC()
	t := model.Task{
		ID:        store.NextTaskID(db),
		Text:      text,
		MatrixID:  matrixID,
		Urgency:   urgency,
		Status:    model.StatusNotDone,
		Order:     store.NextOrder(db.Tasks, matrixID, urgency),
		CreatedAt: &now,
	}
	db.Tasks = append(db.Tasks, t)
	return TaskResult{Task: &db.Tasks[len(db.Tasks)-1], Changed: true}, nil
}

// ToggleComplete flips Not Done <-> Completed. Archived and Deleted tasks
// are left untouched: the UI never offers the control on those rows, and
// the operation guards anyway.
func ToggleComplete(db *store.DB, id int64) (TaskResult, error) {
	t, ok := db.FindTask(id)
	if !ok {
		return TaskResult{}, NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	switch t.Status {
	case model.StatusNotDone:
		t.Status = model.StatusCompleted
	case model.StatusCompleted:
		t.Status = model.StatusNotDone
	default:
		return TaskResult{Task: t, Changed: false}, nil
	}
	return TaskResult{Task: t, Changed: true}, nil
}

// ArchiveTask stamps archivedAt and parks the task outside the live scopes.
// Order is left as-is; the scope's live orders are renormalized so the
// quadrant stays dense.
func ArchiveTask(db *store.DB, id int64) (TaskResult, error) {
	t, ok := db.FindTask(id)
	if !ok {
		return TaskResult{}, NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	if t.Status == model.StatusArchived {
		return TaskResult{Task: t, Changed: false}, nil
	}
	now := time.Now().UTC()
	t.Status = model.StatusArchived
	t.ArchivedAt = &now
	store.Renormalize(db.Tasks, t.MatrixID, t.Urgency)
	return TaskResult{Task: t, Changed: true}, nil
}

// UnarchiveTask returns an archived task to Not Done. Its stored order is
// kept; the scope renormalization slots it deterministically among the live
// tasks again.
func UnarchiveTask(db *store.DB, id int64) (TaskResult, error) {
	t, ok := db.FindTask(id)
	if !ok {
		return TaskResult{}, NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	if t.Status != model.StatusArchived {
		return TaskResult{Task: t, Changed: false}, nil
	}
	t.Status = model.StatusNotDone
	t.ArchivedAt = nil
	store.Renormalize(db.Tasks, t.MatrixID, t.Urgency)
	return TaskResult{Task: t, Changed: true}, nil
}

// DeleteTask soft-deletes. An in-flight inline edit of the task is
// cancelled first.
func DeleteTask(db *store.DB, edit *EditSession, id int64) (TaskResult, error) {
	if edit != nil && edit.Active() && edit.TaskID == id {
		edit.Cancel()
	}
	t, ok := db.FindTask(id)
	if !ok {
		return TaskResult{}, NotFoundError{Kind: "task", ID: fmt.Sprintf("%d", id)}
	}
	if t.Status == model.StatusDeleted {
		return TaskResult{Task: t, Changed: false}, nil
	}
	now := time.Now().UTC()
	t.Status = model.StatusDeleted
	t.DeletedAt = &now
	store.Renormalize(db.Tasks, t.MatrixID, t.Urgency)
	return TaskResult{Task: t, Changed: true}, nil
}

// PurgeDeleted removes Deleted records entirely (the bulk "clear deleted").
func PurgeDeleted(db *store.DB) int {
	kept := db.Tasks[:0]
	removed := 0
	for _, t := range db.Tasks {
		if t.Status == model.StatusDeleted {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	db.Tasks = kept
	return removed
}
