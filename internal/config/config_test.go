package config

import (
	"os"
	"path/filepath"
	"testing"

	"quadrant-cli/internal/model"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.TasksPerQuadrant != 0 || !cfg.ShowCompleted || cfg.Urgency() != model.UrgencyMedium {
		t.Fatalf("defaults = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "tasks_per_quadrant = 5\nshow_completed = false\ndefault_urgency = \"High\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.TasksPerQuadrant != 5 || cfg.ShowCompleted || cfg.Urgency() != model.UrgencyHigh {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadOrCreateSanitizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "tasks_per_quadrant = -3\ndefault_urgency = \"Critical\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.TasksPerQuadrant != 0 {
		t.Fatalf("negative cap kept: %d", cfg.TasksPerQuadrant)
	}
	if cfg.Urgency() != model.UrgencyMedium {
		t.Fatalf("unknown urgency kept: %q", cfg.DefaultUrgency)
	}
}
