package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentRoot != "./content" || cfg.LogLevel != "info" || cfg.DefaultPack != "DefaultPack" || !cfg.Watch {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Layers.Min != -1 || cfg.Layers.Max != 1 {
		t.Fatalf("layers = %+v", cfg.Layers)
	}
	if cfg.Window.CellSize != 32 {
		t.Fatalf("cell size = %d", cfg.Window.CellSize)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	content := `contentRoot: /srv/content
logLevel: debug
watch: false
layers:
  min: -2
  max: 3
window:
  cellSize: 16
`
	if err := os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentRoot != "/srv/content" || cfg.LogLevel != "debug" || cfg.Watch {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Layers.Min != -2 || cfg.Layers.Max != 3 || cfg.Window.CellSize != 16 {
		t.Fatalf("unexpected nested config: %+v", cfg)
	}
	if cfg.Window.Width != 1280 {
		t.Fatalf("unset keys should keep defaults, width = %d", cfg.Window.Width)
	}
}

func TestLoadRejectsInvertedLayers(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{"layers":{"min":2,"max":1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for inverted layer bounds")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName+".json"), []byte(`{"logLevel":`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MAPEDITOR_CONTENTROOT", "/from/env")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ContentRoot != "/from/env" {
		t.Fatalf("content root = %q", cfg.ContentRoot)
	}
}
