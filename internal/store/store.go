package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"quadrant-cli/internal/model"
)

const dbFileName = "db.json"

// DB is the in-memory application snapshot: the full matrix and task
// collections. Mutation code edits a loaded snapshot and saves it back;
// persistence failures never feed back into mutation results.
type DB struct {
	Version  int            `json:"version"`
	Matrices []model.Matrix `json:"matrices"`
	Tasks    []model.Task   `json:"tasks"`
}

type Store struct {
	Dir string
}

// DefaultMatrices returns the pinned matrices that must always exist, in
// canonical order.
func DefaultMatrices() []model.Matrix {
	return []model.Matrix{
		{ID: "work", Name: "Work", Pinned: true},
		{ID: "personal", Name: "Personal", Pinned: true},
		{ID: "goals", Name: "Goals", Pinned: true},
	}
}

// DefaultMatrixID is the fallback when a selection has nothing to point at.
const DefaultMatrixID = "work"

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.quadrant).
	if v := strings.TrimSpace(os.Getenv("QUADRANT_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quadrant"), nil
}

var workspaceNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "default"
	}
	if !workspaceNameRe.MatchString(name) {
		return "", fmt.Errorf("invalid workspace name: %q", name)
	}
	return name, nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads the workspace snapshot and runs the normalize pipeline so
// callers always see the current schema.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := s.LoadSQLite(context.Background())
	if err != nil {
		return nil, err
	}
	Normalize(db)
	return db, nil
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// NextTaskID allocates a monotonic, creation-time-derived task id. Ids also
// serve as sort tie-breaks and as a fallback creation timestamp.
func NextTaskID(db *DB) int64 {
	id := time.Now().UTC().UnixMilli()
	for i := range db.Tasks {
		if db.Tasks[i].ID >= id {
			id = db.Tasks[i].ID + 1
		}
	}
	return id
}

func (db *DB) FindTask(id int64) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func (db *DB) FindMatrix(id string) (*model.Matrix, bool) {
	for i := range db.Matrices {
		if db.Matrices[i].ID == id {
			return &db.Matrices[i], true
		}
	}
	return nil, false
}

// RemoveMatrix drops a matrix from the list. Returns false when absent.
func (db *DB) RemoveMatrix(id string) bool {
	for i := range db.Matrices {
		if db.Matrices[i].ID == id {
			db.Matrices = append(db.Matrices[:i], db.Matrices[i+1:]...)
			return true
		}
	}
	return false
}
