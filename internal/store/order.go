package store

import (
	"sort"

	"quadrant-cli/internal/model"
)

// NextOrder returns the order value for a task entering the (matrixID, urgency)
// scope: max live order + 1, or 0 when the scope has no live tasks.
func NextOrder(tasks []model.Task, matrixID string, urgency model.Urgency) int {
	next := 0
	for i := range tasks {
		t := &tasks[i]
		if !t.Live() || t.MatrixID != matrixID || t.Urgency != urgency {
			continue
		}
		if t.Order+1 > next {
			next = t.Order + 1
		}
	}
	return next
}

// Renormalize rewrites the orders of live tasks in (matrixID, urgency) to a
// dense 0..n-1 sequence following the canonical scope sort (order, then id).
// All other tasks are untouched. Call this on a scope whenever a task leaves
// it, so repeated moves don't accumulate holes.
func Renormalize(tasks []model.Task, matrixID string, urgency model.Urgency) {
	idxs := scopeIndexes(tasks, matrixID, urgency)
	sort.Slice(idxs, func(i, j int) bool {
		a, b := &tasks[idxs[i]], &tasks[idxs[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	for pos, idx := range idxs {
		tasks[idx].Order = pos
	}
}

// RenormalizeMatrix renormalizes all four urgency scopes of a matrix.
func RenormalizeMatrix(tasks []model.Task, matrixID string) {
	for _, u := range model.Urgencies {
		Renormalize(tasks, matrixID, u)
	}
}

// ScopeTasks returns the live tasks of (matrixID, urgency) in canonical
// order (order asc, id asc). The result holds copies; use task ids to map
// back to the owning collection.
func ScopeTasks(tasks []model.Task, matrixID string, urgency model.Urgency) []model.Task {
	idxs := scopeIndexes(tasks, matrixID, urgency)
	out := make([]model.Task, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, tasks[idx])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// VisibleTasks returns the live tasks of one urgency across a matrix
// view-set, sorted by matrix display position, then order, then id. This is
// the list the board renders and the list reorder indexes are computed on.
func VisibleTasks(tasks []model.Task, selectedMatrixIDs []string, urgency model.Urgency) []model.Task {
	pos := make(map[string]int, len(selectedMatrixIDs))
	for i, id := range selectedMatrixIDs {
		pos[id] = i
	}
	var out []model.Task
	for i := range tasks {
		t := &tasks[i]
		if !t.Live() || t.Urgency != urgency {
			continue
		}
		if _, ok := pos[t.MatrixID]; !ok {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if pos[out[i].MatrixID] != pos[out[j].MatrixID] {
			return pos[out[i].MatrixID] < pos[out[j].MatrixID]
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func scopeIndexes(tasks []model.Task, matrixID string, urgency model.Urgency) []int {
	var idxs []int
	for i := range tasks {
		t := &tasks[i]
		if t.Live() && t.MatrixID == matrixID && t.Urgency == urgency {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
