package store

import (
	"sort"
	"time"

	"quadrant-cli/internal/model"
)

// ArchivedTasks is the read-only archived projection, oldest first by
// archive time (creation time when the stamp is missing).
func ArchivedTasks(db *DB) []model.Task {
	return historyTasks(db, model.StatusArchived, func(t model.Task) time.Time {
		if t.ArchivedAt != nil {
			return *t.ArchivedAt
		}
		return t.CreatedTime()
	})
}

// DeletedTasks is the read-only deleted projection, oldest first by delete
// time.
func DeletedTasks(db *DB) []model.Task {
	return historyTasks(db, model.StatusDeleted, func(t model.Task) time.Time {
		if t.DeletedAt != nil {
			return *t.DeletedAt
		}
		return t.CreatedTime()
	})
}

func historyTasks(db *DB, status model.Status, at func(model.Task) time.Time) []model.Task {
	var out []model.Task
	for _, t := range db.Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := at(out[i]), at(out[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
