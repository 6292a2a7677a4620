package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", cfg.Integrator)
	}
	if cfg.Points != 1000 {
		t.Errorf("expected 1000 points, got %d", cfg.Points)
	}
	if cfg.End <= cfg.Start {
		t.Error("default interval should be non-empty")
	}
	if cfg.Floor <= 0 {
		t.Error("default eigenvalue floor should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("chain3")
	if cfg == nil {
		t.Fatal("expected chain3 preset, got nil")
	}
	if len(cfg.Masses) != 3 {
		t.Errorf("expected 3 masses, got %d", len(cfg.Masses))
	}
	if cfg.Stiffness[1][1] != 3 {
		t.Errorf("expected K[1][1] = 3, got %f", cfg.Stiffness[1][1])
	}
}

func TestGetPreset_Pendulums(t *testing.T) {
	cfg := GetPreset("pendulums")
	if cfg == nil {
		t.Fatal("expected pendulums preset, got nil")
	}

	// k/m + g/l with k=50, m=1, g=9.8, l=1
	if cfg.Stiffness[0][0] != 59.8 {
		t.Errorf("expected diagonal 59.8, got %f", cfg.Stiffness[0][0])
	}
	if cfg.Stiffness[0][1] != -50 {
		t.Errorf("expected off-diagonal -50, got %f", cfg.Stiffness[0][1])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 2 {
		t.Errorf("expected 2 presets, got %d", len(names))
	}
}

func TestLoadSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	orig := GetPreset("chain3")
	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(loaded.Masses) != len(orig.Masses) {
		t.Errorf("masses length mismatch: %d vs %d", len(loaded.Masses), len(orig.Masses))
	}
	if loaded.Stiffness[2][1] != orig.Stiffness[2][1] {
		t.Errorf("stiffness entry mismatch: %f vs %f", loaded.Stiffness[2][1], orig.Stiffness[2][1])
	}
	if loaded.Points != orig.Points {
		t.Errorf("points mismatch: %d vs %d", loaded.Points, orig.Points)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScenarioConversion(t *testing.T) {
	cfg := GetPreset("chain3")
	sc := cfg.Scenario()

	if sc.Size() != 3 {
		t.Errorf("expected 3 oscillators, got %d", sc.Size())
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("preset scenario should validate: %v", err)
	}

	y0 := sc.InitialState()
	want := []float64{-1, 0, 1, 0, 1, 0}
	for i, v := range y0 {
		if v != want[i] {
			t.Errorf("initial state entry %d = %f, want %f", i, v, want[i])
		}
	}
}
