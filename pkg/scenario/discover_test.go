package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	content := `name: Test Scenario
description: A scenario used in tests
version: "1.0"
category: testing
parameters:
  - name: num_drones
    type: integer
    description: "How many drones"
    default: 3
    required: true
    min: 1
    max: 50
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := loadInfo(path)
	if err != nil {
		t.Fatalf("loadInfo: %v", err)
	}
	if info.Path != dir {
		t.Errorf("Path = %q, want %q", info.Path, dir)
	}
	cfg := info.Config
	if cfg.Name != "Test Scenario" || cfg.Version != "1.0" || cfg.Category != "testing" {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.Parameters) != 1 {
		t.Fatalf("parameters = %d, want 1", len(cfg.Parameters))
	}
	p := cfg.Parameters[0]
	if p.Name != "num_drones" || p.Type != "integer" || !p.Required {
		t.Errorf("parameter = %+v", p)
	}
	if p.Default != 3 || p.Min != 1 || p.Max != 50 {
		t.Errorf("parameter bounds = default=%v min=%v max=%v", p.Default, p.Min, p.Max)
	}
}

func TestLoadInfoBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- broken"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadInfo(path); err == nil {
		t.Error("loadInfo accepted invalid yaml")
	}
}
