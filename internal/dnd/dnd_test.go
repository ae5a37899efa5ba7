package dnd

import (
	"testing"

	"quadrant-cli/internal/model"
	"quadrant-cli/internal/store"
)

func newBoard(t *testing.T) *store.DB {
	t.Helper()
	db := &store.DB{}
	store.Normalize(db)
	return db
}

func seed(db *store.DB, id int64, matrixID string, u model.Urgency, order int) {
	db.Tasks = append(db.Tasks, model.Task{
		ID: id, Text: "t", MatrixID: matrixID, Urgency: u,
		Status: model.StatusNotDone, Order: order,
	})
}

func scopeIDs(db *store.DB, matrixID string, u model.Urgency) []int64 {
	seq := store.ScopeTasks(db.Tasks, matrixID, u)
	out := make([]int64, 0, len(seq))
	for _, t := range seq {
		out = append(out, t.ID)
	}
	return out
}

func assertSeq(t *testing.T, db *store.DB, matrixID string, u model.Urgency, want ...int64) {
	t.Helper()
	got := scopeIDs(db, matrixID, u)
	if len(got) != len(want) {
		t.Fatalf("scope %s/%s = %v, want %v", matrixID, u, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("scope %s/%s = %v, want %v", matrixID, u, got, want)
		}
	}
	for i, id := range got {
		tk, _ := db.FindTask(id)
		if tk.Order != i {
			t.Fatalf("scope %s/%s not dense: task %d order %d at pos %d", matrixID, u, id, tk.Order, i)
		}
	}
}

var workOnly = []string{"work"}

func TestReorderWithinQuadrant(t *testing.T) {
	// Dragging the first row onto the last lands it at the last position.
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "work", model.UrgencyHigh, 1)
	seed(db, 3, "work", model.UrgencyHigh, 2)

	target := TaskTarget(3)
	if got := DragEnd(db, workOnly, 1, &target); got != OutcomeReordered {
		t.Fatalf("outcome = %v, want reordered", got)
	}
	assertSeq(t, db, "work", model.UrgencyHigh, 2, 3, 1)
}

func TestReorderBackward(t *testing.T) {
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "work", model.UrgencyHigh, 1)
	seed(db, 3, "work", model.UrgencyHigh, 2)

	target := TaskTarget(1)
	if got := DragEnd(db, workOnly, 3, &target); got != OutcomeReordered {
		t.Fatalf("outcome = %v, want reordered", got)
	}
	assertSeq(t, db, "work", model.UrgencyHigh, 3, 1, 2)
}

func TestCrossUrgencyDropLandsAtBottom(t *testing.T) {
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "work", model.UrgencyHigh, 1)
	seed(db, 3, "work", model.UrgencyLow, 0)

	target := QuadrantTarget(model.UrgencyLow)
	if got := DragEnd(db, workOnly, 1, &target); got != OutcomeMoved {
		t.Fatalf("outcome = %v, want moved", got)
	}
	assertSeq(t, db, "work", model.UrgencyLow, 3, 1)
	// The vacated quadrant closes its hole.
	assertSeq(t, db, "work", model.UrgencyHigh, 2)
}

func TestDropOnTaskInOtherQuadrantLandsAtBottom(t *testing.T) {
	// Dropping on a row of another quadrant behaves like a quadrant drop:
	// bottom of the destination, not at the hovered row.
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "work", model.UrgencyLow, 0)
	seed(db, 3, "work", model.UrgencyLow, 1)

	target := TaskTarget(2)
	if got := DragEnd(db, workOnly, 1, &target); got != OutcomeMoved {
		t.Fatalf("outcome = %v, want moved", got)
	}
	assertSeq(t, db, "work", model.UrgencyLow, 2, 3, 1)
}

func TestCrossMatrixTaskDropIgnored(t *testing.T) {
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "personal", model.UrgencyHigh, 0)

	target := TaskTarget(2)
	if got := DragEnd(db, []string{"work", "personal"}, 1, &target); got != OutcomeNone {
		t.Fatalf("outcome = %v, want none", got)
	}
	assertSeq(t, db, "work", model.UrgencyHigh, 1)
	assertSeq(t, db, "personal", model.UrgencyHigh, 2)
}

func TestNoOpDrops(t *testing.T) {
	db := newBoard(t)
	seed(db, 1, "work", model.UrgencyHigh, 0)
	seed(db, 2, "work", model.UrgencyHigh, 1)

	if got := DragEnd(db, workOnly, 1, nil); got != OutcomeNone {
		t.Fatalf("nil target: outcome = %v", got)
	}

	sameQuadrant := QuadrantTarget(model.UrgencyHigh)
	if got := DragEnd(db, workOnly, 1, &sameQuadrant); got != OutcomeNone {
		t.Fatalf("same-quadrant sentinel: outcome = %v", got)
	}

	self := TaskTarget(1)
	if got := DragEnd(db, workOnly, 1, &self); got != OutcomeNone {
		t.Fatalf("self drop: outcome = %v", got)
	}

	unknownDragged := TaskTarget(2)
	if got := DragEnd(db, workOnly, 99, &unknownDragged); got != OutcomeNone {
		t.Fatalf("unknown dragged id: outcome = %v", got)
	}

	unknownTarget := TaskTarget(99)
	if got := DragEnd(db, workOnly, 1, &unknownTarget); got != OutcomeNone {
		t.Fatalf("unknown target id: outcome = %v", got)
	}

	assertSeq(t, db, "work", model.UrgencyHigh, 1, 2)
}

func TestStaleDragOutsideViewSetIgnored(t *testing.T) {
	// The dragged task's matrix left the view-set mid-gesture.
	db := newBoard(t)
	seed(db, 1, "personal", model.UrgencyHigh, 0)
	seed(db, 2, "personal", model.UrgencyHigh, 1)

	target := TaskTarget(2)
	if got := DragEnd(db, []string{"work"}, 1, &target); got != OutcomeNone {
		t.Fatalf("stale drag: outcome = %v", got)
	}
	assertSeq(t, db, "personal", model.UrgencyHigh, 1, 2)
}

func TestRepeatedMovesStayDense(t *testing.T) {
	db := newBoard(t)
	for i := int64(1); i <= 4; i++ {
		seed(db, i, "work", model.UrgencyHigh, int(i-1))
	}
	low := QuadrantTarget(model.UrgencyLow)
	high := QuadrantTarget(model.UrgencyHigh)
	for i := 0; i < 3; i++ {
		DragEnd(db, workOnly, 2, &low)
		DragEnd(db, workOnly, 2, &high)
	}
	assertSeq(t, db, "work", model.UrgencyHigh, 1, 3, 4, 2)
	if got := scopeIDs(db, "work", model.UrgencyLow); len(got) != 0 {
		t.Fatalf("low quadrant not empty: %v", got)
	}
}
