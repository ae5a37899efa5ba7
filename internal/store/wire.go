package store

import (
	"encoding/json"
	"fmt"
	"time"

	"quadrant-cli/internal/model"
)

// ExportDoc is the stable on-disk exchange shape. It must round-trip across
// versions, so it carries the full collections verbatim.
type ExportDoc struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Matrices   []model.Matrix `json:"matrices"`
	Tasks      []model.Task   `json:"tasks"`
}

// Export snapshots the current collections into the wire shape with a fresh
// timestamp.
func Export(db *DB) ExportDoc {
	return ExportDoc{
		Version:    1,
		ExportedAt: time.Now().UTC(),
		Matrices:   append([]model.Matrix{}, db.Matrices...),
		Tasks:      append([]model.Task{}, db.Tasks...),
	}
}

func MarshalExport(db *DB) ([]byte, error) {
	return json.MarshalIndent(Export(db), "", "  ")
}

// wireTask mirrors model.Task but keeps order as a pointer so an absent
// order is distinguishable from order 0. Order backfill is all-or-nothing:
// it only runs when no task in the whole document carries a numeric order.
type wireTask struct {
	ID       int64         `json:"id"`
	Text     string        `json:"text"`
	MatrixID string        `json:"matrixId"`
	Urgency  model.Urgency `json:"urgency"`
	Status   model.Status  `json:"status"`
	Order    *int          `json:"order"`
	Created  *time.Time    `json:"createdAt"`
	Archived *time.Time    `json:"archivedAt"`
	Deleted  *time.Time    `json:"deletedAt"`
	Tag      string        `json:"tag"`
}

// ParseImport parses and normalizes an exported (or legacy) document into a
// fresh snapshot. It never touches existing state: on any error the caller's
// current snapshot remains valid and untouched.
func ParseImport(b []byte) (*DB, error) {
	var doc struct {
		Matrices json.RawMessage `json:"matrices"`
		Tasks    json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("import: invalid JSON: %w", err)
	}
	if len(doc.Matrices) == 0 {
		return nil, fmt.Errorf("import: missing %q array", "matrices")
	}
	if len(doc.Tasks) == 0 {
		return nil, fmt.Errorf("import: missing %q array", "tasks")
	}

	var matrices []model.Matrix
	if err := json.Unmarshal(doc.Matrices, &matrices); err != nil || matrices == nil {
		return nil, fmt.Errorf("import: %q must be an array of matrices", "matrices")
	}
	var wts []wireTask
	if err := json.Unmarshal(doc.Tasks, &wts); err != nil || wts == nil {
		return nil, fmt.Errorf("import: %q must be an array of tasks", "tasks")
	}

	db := &DB{Version: 1, Matrices: matrices, Tasks: make([]model.Task, 0, len(wts))}
	hasAnyOrder := false
	for _, wt := range wts {
		t := model.Task{
			ID:         wt.ID,
			Text:       wt.Text,
			MatrixID:   wt.MatrixID,
			Urgency:    wt.Urgency,
			Status:     wt.Status,
			CreatedAt:  wt.Created,
			ArchivedAt: wt.Archived,
			DeletedAt:  wt.Deleted,
			LegacyTag:  wt.Tag,
		}
		if wt.Status == "" {
			t.Status = model.StatusNotDone
		}
		if wt.Urgency == "" {
			t.Urgency = model.UrgencyMedium
		}
		if wt.Order != nil {
			hasAnyOrder = true
			t.Order = *wt.Order
		}
		db.Tasks = append(db.Tasks, t)
	}

	Normalize(db)
	if !hasAnyOrder {
		backfillOrders(db)
	}
	return db, nil
}
