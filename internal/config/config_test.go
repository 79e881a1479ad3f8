package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "workday_hours: 6\nbottleneck_threshold: 0.35\nmax_paths: 12\n"
	if err := os.WriteFile(filepath.Join(dir, ".critpath.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkdayHours != 6 {
		t.Errorf("expected workday_hours 6, got %d", cfg.WorkdayHours)
	}
	if cfg.BottleneckThreshold != 0.35 {
		t.Errorf("expected threshold 0.35, got %v", cfg.BottleneckThreshold)
	}
	if cfg.MaxPaths != 12 {
		t.Errorf("expected max_paths 12, got %d", cfg.MaxPaths)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".critpath.yaml"), []byte("max_paths: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxPaths != 3 {
		t.Errorf("expected max_paths 3, got %d", cfg.MaxPaths)
	}
	if cfg.WorkdayHours != Defaults().WorkdayHours {
		t.Errorf("expected default workday_hours, got %d", cfg.WorkdayHours)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CRITPATH_MAX_PATHS", "9")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxPaths != 9 {
		t.Errorf("expected env override 9, got %d", cfg.MaxPaths)
	}
}
