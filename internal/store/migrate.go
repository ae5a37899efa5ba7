package store

import "quadrant-cli/internal/model"

// Normalize brings a loaded or imported snapshot up to the current schema.
// Idempotent: normalizing an already-normalized snapshot changes nothing.
func Normalize(db *DB) bool {
	changed := false
	if db.Version == 0 {
		db.Version = 1
		changed = true
	}
	if db.Matrices == nil {
		db.Matrices = []model.Matrix{}
		changed = true
	}
	if db.Tasks == nil {
		db.Tasks = []model.Task{}
		changed = true
	}
	if migrateDefaultMatrices(db) {
		changed = true
	}
	if migrateLegacyTags(db) {
		changed = true
	}
	return changed
}

// migrateDefaultMatrices re-inserts any missing default matrix and forces
// name/pinned on existing entries with default ids. Stored data cannot
// downgrade a default to unpinned. All other matrices are preserved as-is.
func migrateDefaultMatrices(db *DB) bool {
	changed := false
	for _, def := range DefaultMatrices() {
		m, ok := db.FindMatrix(def.ID)
		if !ok {
			db.Matrices = append(db.Matrices, def)
			changed = true
			continue
		}
		if m.Name != def.Name {
			m.Name = def.Name
			changed = true
		}
		if !m.Pinned {
			m.Pinned = true
			changed = true
		}
	}
	return changed
}

var legacyTagToMatrixID = map[string]string{
	"Personal": "personal",
	"Goals":    "goals",
}

// migrateLegacyTags maps the old flat category field onto matrixId for tasks
// that predate matrices. Unknown or missing tags go to "work".
func migrateLegacyTags(db *DB) bool {
	changed := false
	for i := range db.Tasks {
		t := &db.Tasks[i]
		if t.MatrixID == "" {
			id, ok := legacyTagToMatrixID[t.LegacyTag]
			if !ok {
				id = DefaultMatrixID
			}
			t.MatrixID = id
			changed = true
		}
		if t.LegacyTag != "" {
			t.LegacyTag = ""
			changed = true
		}
	}
	return changed
}

// backfillOrders assigns orders from stored sequence, keeping a counter per
// (matrixId, urgency) scope. Only called when the whole imported set carried
// no numeric order at all; partial legacy data is not reconciled.
func backfillOrders(db *DB) {
	type scope struct {
		matrixID string
		urgency  model.Urgency
	}
	counters := map[scope]int{}
	for i := range db.Tasks {
		t := &db.Tasks[i]
		k := scope{matrixID: t.MatrixID, urgency: t.Urgency}
		t.Order = counters[k]
		counters[k]++
	}
}
