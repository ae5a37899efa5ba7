package store

import (
	"testing"

	"quadrant-cli/internal/model"
)

func liveTask(id int64, matrixID string, u model.Urgency, order int) model.Task {
	return model.Task{ID: id, Text: "t", MatrixID: matrixID, Urgency: u, Status: model.StatusNotDone, Order: order}
}

func TestNextOrderEmptyScope(t *testing.T) {
	if got := NextOrder(nil, "work", model.UrgencyHigh); got != 0 {
		t.Fatalf("NextOrder on empty scope = %d, want 0", got)
	}
}

func TestNextOrderIgnoresOtherScopesAndNonLive(t *testing.T) {
	tasks := []model.Task{
		liveTask(1, "work", model.UrgencyHigh, 0),
		liveTask(2, "work", model.UrgencyHigh, 1),
		liveTask(3, "work", model.UrgencyLow, 7),
		liveTask(4, "personal", model.UrgencyHigh, 9),
		{ID: 5, MatrixID: "work", Urgency: model.UrgencyHigh, Status: model.StatusArchived, Order: 40},
	}
	if got := NextOrder(tasks, "work", model.UrgencyHigh); got != 2 {
		t.Fatalf("NextOrder = %d, want 2", got)
	}
}

func TestRenormalizeDensifiesScope(t *testing.T) {
	tasks := []model.Task{
		liveTask(1, "work", model.UrgencyHigh, 5),
		liveTask(2, "work", model.UrgencyHigh, 2),
		liveTask(3, "work", model.UrgencyHigh, 9),
		liveTask(4, "work", model.UrgencyLow, 9), // other scope untouched
		{ID: 5, MatrixID: "work", Urgency: model.UrgencyHigh, Status: model.StatusDeleted, Order: 3},
	}
	Renormalize(tasks, "work", model.UrgencyHigh)

	wantOrder := map[int64]int{2: 0, 1: 1, 3: 2}
	for id, want := range wantOrder {
		got := orderOf(t, tasks, id)
		if got != want {
			t.Fatalf("task %d order = %d, want %d", id, got, want)
		}
	}
	if orderOf(t, tasks, 4) != 9 {
		t.Fatalf("other scope was renormalized")
	}
	if orderOf(t, tasks, 5) != 3 {
		t.Fatalf("non-live task order changed")
	}
}

func TestRenormalizeTiesBreakByID(t *testing.T) {
	tasks := []model.Task{
		liveTask(20, "work", model.UrgencyHigh, 1),
		liveTask(10, "work", model.UrgencyHigh, 1),
	}
	Renormalize(tasks, "work", model.UrgencyHigh)
	if orderOf(t, tasks, 10) != 0 || orderOf(t, tasks, 20) != 1 {
		t.Fatalf("tie not broken by id: %v", tasks)
	}
}

func TestScopeTasksCanonicalOrder(t *testing.T) {
	tasks := []model.Task{
		liveTask(3, "work", model.UrgencyHigh, 2),
		liveTask(1, "work", model.UrgencyHigh, 0),
		liveTask(2, "work", model.UrgencyHigh, 1),
		liveTask(4, "work", model.UrgencyLow, 0),
	}
	seq := ScopeTasks(tasks, "work", model.UrgencyHigh)
	if len(seq) != 3 {
		t.Fatalf("len = %d, want 3", len(seq))
	}
	for i, want := range []int64{1, 2, 3} {
		if seq[i].ID != want {
			t.Fatalf("seq[%d].ID = %d, want %d", i, seq[i].ID, want)
		}
	}
}

func TestVisibleTasksGroupsByMatrixPosition(t *testing.T) {
	tasks := []model.Task{
		liveTask(1, "personal", model.UrgencyHigh, 0),
		liveTask(2, "work", model.UrgencyHigh, 1),
		liveTask(3, "work", model.UrgencyHigh, 0),
		liveTask(4, "goals", model.UrgencyHigh, 0), // not in view-set
		liveTask(5, "personal", model.UrgencyLow, 0),
	}
	got := VisibleTasks(tasks, []string{"personal", "work"}, model.UrgencyHigh)
	want := []int64{1, 3, 2}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("got[%d].ID = %d, want %d", i, got[i].ID, want[i])
		}
	}
}

func orderOf(t *testing.T, tasks []model.Task, id int64) int {
	t.Helper()
	for i := range tasks {
		if tasks[i].ID == id {
			return tasks[i].Order
		}
	}
	t.Fatalf("task %d not found", id)
	return 0
}
