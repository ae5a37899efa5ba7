package store

import (
	"os"
	"path/filepath"
	"testing"

	"quadrant-cli/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load fresh: %v", err)
	}
	if len(db.Matrices) != 3 {
		t.Fatalf("fresh workspace matrices = %d, want 3 defaults", len(db.Matrices))
	}

	db.Tasks = append(db.Tasks,
		liveTask(1, "work", model.UrgencyHigh, 0),
		liveTask(2, "personal", model.UrgencyLow, 0),
	)
	db.Matrices = append(db.Matrices, model.Matrix{ID: "side", Name: "Side", Pinned: false})
	if err := s.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(got.Tasks))
	}
	if got.Tasks[0].ID != 1 || got.Tasks[1].ID != 2 {
		t.Fatalf("task sequence not preserved: %+v", got.Tasks)
	}
	if m, ok := got.FindMatrix("side"); !ok || m.Pinned {
		t.Fatalf("custom matrix lost or altered")
	}
}

func TestLoadImportsLegacyJSONOnce(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"matrices": [], "tasks": [
		{"id": 7, "text": "old", "tag": "Goals", "urgency": "High"}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "db.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("seed db.json: %v", err)
	}

	s := Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tk, ok := db.FindTask(7)
	if !ok {
		t.Fatalf("legacy task not imported")
	}
	if tk.MatrixID != "goals" || tk.LegacyTag != "" {
		t.Fatalf("legacy task not migrated: %+v", tk)
	}

	// Mutations after the one-time import must not be clobbered by db.json.
	db.Tasks = db.Tasks[:0]
	if err := s.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := s.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := again.FindTask(7); ok {
		t.Fatalf("db.json re-imported over saved state")
	}
}

func TestNextTaskIDMonotonic(t *testing.T) {
	db := &DB{Tasks: []model.Task{{ID: 1 << 60}}}
	if got := NextTaskID(db); got != (1<<60)+1 {
		t.Fatalf("NextTaskID = %d, want %d", got, (1<<60)+1)
	}
}

func TestNormalizeWorkspaceName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "default", true},
		{"  Team-A  ", "team-a", true},
		{"notes.2026", "notes.2026", true},
		{"-bad", "", false},
		{"has space", "", false},
	}
	for _, tc := range cases {
		got, err := NormalizeWorkspaceName(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("NormalizeWorkspaceName(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("NormalizeWorkspaceName(%q) accepted invalid name", tc.in)
		}
	}
}

func TestTUIStateRoundTripAndCorruptFile(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	st := &TUIState{
		Version:         1,
		View:            "board",
		ActivePinnedIDs: []string{"work", "goals"},
		FocusMatrixID:   "side",
		ViewOrderIDs:    []string{"goals", "work", "side"},
		LastSelectedID:  "side",
	}
	if err := s.SaveTUIState(st); err != nil {
		t.Fatalf("SaveTUIState: %v", err)
	}
	got, err := s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if got.FocusMatrixID != "side" || len(got.ViewOrderIDs) != 3 {
		t.Fatalf("state not restored: %+v", got)
	}

	if err := os.WriteFile(filepath.Join(s.Dir, "tui_state.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	got, err = s.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState on corrupt file: %v", err)
	}
	if got.FocusMatrixID != "" || got.Version != 1 {
		t.Fatalf("corrupt state not treated as fresh: %+v", got)
	}
}
