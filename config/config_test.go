package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "procmap.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Storage.Driver != "" || cfg.Render.Orientation != "" {
		t.Errorf("expected zero-value config, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procmap.json")
	body := `{
		"storage": {"driver": "sqlite", "dsn": "builds.db"},
		"http": {"host": "0.0.0.0", "port": 9000},
		"render": {"orientation": "TB", "label_template": "{{ label }}"}
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.DSN != "builds.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.HTTP.Port != 9000 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Render.Orientation != "TB" || cfg.Render.LabelTemplate != "{{ label }}" {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procmap.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected a parse error")
	}
}
