package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"quadrant-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), "index.sqlite")
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// LoadSQLite loads the workspace state from index.sqlite. If the SQLite
// state is empty but a legacy db.json (the exported wire shape) exists, it
// imports that file once and then loads from SQLite.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		// One-time import from db.json if present.
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			legacy, err := ParseImport(b)
			if err != nil {
				return nil, err
			}
			if err := s.SaveSQLite(ctx, legacy); err != nil {
				return nil, err
			}
		}
	}

	return loadStateFromSQLite(ctx, db)
}

// SaveSQLite mirrors the snapshot with a replace-all transaction. Simple and
// safe; incremental writes are unnecessary at these collection sizes.
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", fmt.Sprintf("%d", st.Version)); err != nil {
		return err
	}
	for _, t := range []string{"matrices", "tasks"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for i, m := range st.Matrices {
		raw, _ := json.Marshal(m)
		if _, err := tx.ExecContext(ctx, `INSERT INTO matrices(id, name, pinned, position, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, boolToInt(m.Pinned), i, string(raw), nowMs); err != nil {
			return err
		}
	}
	for i, t := range st.Tasks {
		raw, _ := json.Marshal(t)
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(
			id, matrix_id, urgency, status, ord, position,
			json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.MatrixID, string(t.Urgency), string(t.Status), t.Order, i,
			string(raw), nowMs,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS matrices (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pinned INTEGER NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY,
			matrix_id TEXT NOT NULL,
			urgency TEXT NOT NULL,
			status TEXT NOT NULL,
			ord INTEGER NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_scope ON tasks(matrix_id, urgency);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	for _, q := range []string{`SELECT COUNT(1) FROM tasks`, `SELECT COUNT(1) FROM matrices`} {
		var n int
		if err := db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			// If tables don't exist yet, treat as empty.
			return false, nil
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1}

	var v string
	_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "version").Scan(&v)
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
		out.Version = n
	}

	// Stored row position preserves the collection sequence, which order
	// backfill depends on for legacy data.
	if xs, err := readJSONRows[model.Matrix](ctx, db, `SELECT json FROM matrices ORDER BY position`); err == nil {
		out.Matrices = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks ORDER BY position`); err == nil {
		out.Tasks = xs
	} else {
		return nil, err
	}

	if out.Matrices == nil {
		out.Matrices = []model.Matrix{}
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
