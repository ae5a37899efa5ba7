package store

import (
	"testing"
	"time"

	"quadrant-cli/internal/model"
)

func TestArchivedTasksOldestFirst(t *testing.T) {
	t1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db := &DB{Tasks: []model.Task{
		{ID: 1, Status: model.StatusArchived, ArchivedAt: &t1},
		{ID: 2, Status: model.StatusArchived, ArchivedAt: &t2},
		{ID: 3, Status: model.StatusNotDone},
	}}
	got := ArchivedTasks(db)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("not oldest first: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestDeletedTasksFallBackToCreationTime(t *testing.T) {
	stamp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// ID doubles as a creation timestamp; the unstamped task's id is older
	// than the stamped one's delete time.
	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	db := &DB{Tasks: []model.Task{
		{ID: 9, Status: model.StatusDeleted, DeletedAt: &stamp},
		{ID: old, Status: model.StatusDeleted},
	}}
	got := DeletedTasks(db)
	if got[0].ID != old {
		t.Fatalf("missing stamp did not fall back to creation time: first = %d", got[0].ID)
	}
}
