package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"quadrant-cli/internal/model"
)

const DefaultConfigFileName = "config.toml"

// Config holds user-tunable display options for the board.
type Config struct {
	// TasksPerQuadrant caps how many rows a quadrant renders before the
	// overflow hint. 0 means no cap.
	TasksPerQuadrant int `toml:"tasks_per_quadrant"`
	// ShowCompleted keeps Completed tasks visible on the board.
	ShowCompleted bool `toml:"show_completed"`
	// DefaultUrgency seeds the new-task draft.
	DefaultUrgency string `toml:"default_urgency"`
}

func defaultConfig() Config {
	return Config{
		TasksPerQuadrant: 0,
		ShowCompleted:    true,
		DefaultUrgency:   string(model.UrgencyMedium),
	}
}

// LoadOrCreate reads the config file, writing one with defaults on first
// run so users have something to edit.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if _, ok := model.ParseUrgency(cfg.DefaultUrgency); !ok {
		cfg.DefaultUrgency = string(model.UrgencyMedium)
	}
	if cfg.TasksPerQuadrant < 0 {
		cfg.TasksPerQuadrant = 0
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Urgency returns the configured default urgency as a typed value.
func (c Config) Urgency() model.Urgency {
	if u, ok := model.ParseUrgency(c.DefaultUrgency); ok {
		return u
	}
	return model.UrgencyMedium
}
