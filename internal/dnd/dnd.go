// Package dnd maps the end of a drag gesture to an ordering mutation. The
// gesture mechanics live elsewhere; this consumes only the dragged task id
// and the drop target, so any event source (or a test) can drive it.
package dnd

import (
	"quadrant-cli/internal/model"
	"quadrant-cli/internal/store"
)

// Target is a drop target: either a quadrant sentinel or another task's row.
type Target struct {
	Quadrant model.Urgency
	TaskID   int64

	isQuadrant bool
}

func QuadrantTarget(u model.Urgency) Target { return Target{Quadrant: u, isQuadrant: true} }
func TaskTarget(id int64) Target            { return Target{TaskID: id} }

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeMoved
	OutcomeReordered
)

// DragEnd applies one completed drag. A nil target, an unknown dragged id,
// or a dragged task whose matrix is outside the current view-set (a stale
// drag) are all no-ops. Cross-matrix task drops are always ignored. Moves
// across urgency land at the bottom of the destination quadrant; the
// vacated scope is renormalized so holes don't accumulate.
func DragEnd(db *store.DB, selectedMatrixIDs []string, draggedID int64, target *Target) Outcome {
	if db == nil || target == nil {
		return OutcomeNone
	}
	t, ok := db.FindTask(draggedID)
	if !ok {
		return OutcomeNone
	}
	if !inSet(selectedMatrixIDs, t.MatrixID) {
		return OutcomeNone
	}

	if target.isQuadrant {
		if target.Quadrant == t.Urgency {
			return OutcomeNone
		}
		moveToQuadrant(db, t, t.MatrixID, target.Quadrant)
		return OutcomeMoved
	}

	over, ok := db.FindTask(target.TaskID)
	if !ok {
		return OutcomeNone
	}
	if over.MatrixID != t.MatrixID {
		return OutcomeNone
	}
	if over.Urgency != t.Urgency {
		moveToQuadrant(db, t, over.MatrixID, over.Urgency)
		return OutcomeMoved
	}
	if over.ID == t.ID {
		return OutcomeNone
	}
	if reorderWithin(db, t.MatrixID, t.Urgency, t.ID, over.ID) {
		return OutcomeReordered
	}
	return OutcomeNone
}

func moveToQuadrant(db *store.DB, t *model.Task, matrixID string, urgency model.Urgency) {
	oldMatrix, oldUrgency := t.MatrixID, t.Urgency
	t.Order = store.NextOrder(db.Tasks, matrixID, urgency)
	t.MatrixID = matrixID
	t.Urgency = urgency
	store.Renormalize(db.Tasks, oldMatrix, oldUrgency)
}

// reorderWithin realizes classic array-move semantics over the canonical
// live sequence of one scope: remove the dragged task at its index, insert
// at the target's original index, then rewrite orders to match positions.
func reorderWithin(db *store.DB, matrixID string, urgency model.Urgency, draggedID, overID int64) bool {
	seq := store.ScopeTasks(db.Tasks, matrixID, urgency)
	from, to := -1, -1
	for i := range seq {
		switch seq[i].ID {
		case draggedID:
			from = i
		case overID:
			to = i
		}
	}
	if from < 0 || to < 0 || from == to {
		return false
	}

	ids := make([]int64, 0, len(seq))
	for i := range seq {
		ids = append(ids, seq[i].ID)
	}
	moved := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	if to > len(ids) {
		to = len(ids)
	}
	ids = append(ids[:to], append([]int64{moved}, ids[to:]...)...)

	for pos, id := range ids {
		if t, ok := db.FindTask(id); ok {
			t.Order = pos
		}
	}
	return true
}

func inSet(xs []string, id string) bool {
	for _, v := range xs {
		if v == id {
			return true
		}
	}
	return false
}
