package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Backend != "vectorized" {
		t.Errorf("expected vectorized backend, got %s", cfg.Backend)
	}
	if cfg.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
	if cfg.Grid.Samples < 2 {
		t.Error("default grid needs at least 2 samples")
	}
	if cfg.Grid.End <= cfg.Grid.Start {
		t.Error("grid end should follow grid start")
	}
	if cfg.Physics.Stiffness != 1000.0 {
		t.Errorf("expected stiffness 1000, got %f", cfg.Physics.Stiffness)
	}
}

func TestGetInitState(t *testing.T) {
	cfg := DefaultConfig()
	x0 := cfg.GetInitState()

	if len(x0) != 4 {
		t.Fatalf("expected 4 components, got %d", len(x0))
	}
	if math.Abs(x0[0]-math.Pi/2) > 1e-12 {
		t.Errorf("theta: got %f, want pi/2", x0[0])
	}
	// static equilibrium extension of the hanging bob: M*g/k
	if math.Abs(x0[2]-0.0098) > 1e-12 {
		t.Errorf("ext: got %f, want 0.0098", x0[2])
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("stress")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Grid.Samples != 10000000 {
		t.Errorf("stress preset should use ten million samples, got %d", cfg.Grid.Samples)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected presets")
	}
	seen := map[string]bool{}
	for _, p := range presets {
		seen[p] = true
	}
	for _, want := range []string{"default", "quick", "stress", "singular"} {
		if !seen[want] {
			t.Errorf("missing preset %s", want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")

	cfg := DefaultConfig()
	cfg.Backend = "scalar"
	cfg.Grid.Samples = 777
	cfg.Physics.Gravity = 1.62

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Backend != "scalar" {
		t.Errorf("backend: got %s", loaded.Backend)
	}
	if loaded.Grid.Samples != 777 {
		t.Errorf("samples: got %d", loaded.Grid.Samples)
	}
	if loaded.Physics.Gravity != 1.62 {
		t.Errorf("gravity: got %f", loaded.Physics.Gravity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
