package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cyclosim/internal/lorentz"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "leapfrog" {
		t.Errorf("expected integrator leapfrog, got %s", cfg.Integrator)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParams(t *testing.T) {
	p := DefaultConfig().Params()

	if p.Mass != 1 || p.Charge != 1 || p.MagneticField != 0.5 || p.Voltage != 3 {
		t.Errorf("unexpected particle params: %+v", p)
	}
	if p.TimeStep != 0.01 {
		t.Errorf("expected dt 0.01, got %f", p.TimeStep)
	}
	if p.BoundaryRadius != 30 || !p.ExtractionEnabled {
		t.Errorf("unexpected boundary params: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("params should validate: %v", err)
	}
}

func TestInitialState(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.InitialState()

	if s.Position.X != 5 || s.Position.Z != 0 {
		t.Errorf("expected start at (5,0,0), got %v", s.Position)
	}
	// circular speed r·|q|B/m = 2.5 is below the minimum of 3
	if s.Velocity.Z != 3 || s.Velocity.X != 0 {
		t.Errorf("expected velocity (0,0,3), got %v", s.Velocity)
	}

	cfg.Field.Magnetic = 2
	if got := cfg.InitialSpeed(); got != 10 {
		t.Errorf("expected circular speed 10, got %f", got)
	}

	cfg.Particle.Charge = -1
	if got := cfg.InitialSpeed(); got != 10 {
		t.Errorf("negative charge should use |q|, got %f", got)
	}
	if v := cfg.InitialState().Velocity; v.Z != -10 {
		t.Errorf("negative charge should launch along -Z, got %v", v)
	}
}

func TestPresetsReachTheGap(t *testing.T) {
	for _, name := range []string{"classic", "antiproton"} {
		cfg := GetPreset(name)
		p := cfg.Params()
		s := cfg.InitialState()

		impulses := 0
		minX := s.Position.X
		steps := int(math.Round(cfg.Duration / cfg.Dt))
		for i := 0; i < steps; i++ {
			rep, err := lorentz.Step(s, p)
			if err != nil {
				t.Fatalf("%s: step %d: %v", name, i, err)
			}
			if rep.Impulse {
				impulses++
			}
			minX = math.Min(minX, s.Position.X)
			if rep.Outcome != lorentz.Continuing {
				break
			}
		}

		if impulses == 0 {
			t.Errorf("%s: expected gap impulses, got none", name)
		}
		if minX >= 0 {
			t.Errorf("%s: orbit should enclose the field axis, min x = %f", name, minX)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"nan dt", func(c *Config) { c.Dt = math.NaN() }},
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"zero mass", func(c *Config) { c.Particle.Mass = 0 }},
		{"negative radius", func(c *Config) { c.Particle.InitialRadius = -1 }},
		{"start outside wall", func(c *Config) { c.Particle.InitialRadius = 40 }},
		{"negative sampling", func(c *Config) { c.SampleEvery = -1 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Boundary.Radius = 0
	cfg.Particle.InitialRadius = 100
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled wall should accept any radius: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("heavy")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particle.Mass != 4 {
		t.Errorf("expected mass 4, got %f", cfg.Particle.Mass)
	}
	if cfg.Name != "heavy" {
		t.Errorf("expected name heavy, got %s", cfg.Name)
	}

	other := GetPreset("heavy")
	other.Particle.Mass = 9
	if cfg.Particle.Mass != 4 {
		t.Error("presets should not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestSetParam(t *testing.T) {
	cfg := DefaultConfig()
	for _, name := range ParamNames() {
		if err := cfg.SetParam(name, 7); err != nil {
			t.Errorf("set %s: %v", name, err)
		}
		if got := cfg.GetParams()[name]; got != 7 {
			t.Errorf("%s: expected 7, got %f", name, got)
		}
	}

	if err := cfg.SetParam("bogus", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("contained")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadTOMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	data := "integrator = \"boris\"\n\n[field]\nvoltage = 5.0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Integrator != "boris" {
		t.Errorf("expected boris, got %s", cfg.Integrator)
	}
	if cfg.Field.Voltage != 5 {
		t.Errorf("expected voltage 5, got %f", cfg.Field.Voltage)
	}
	if cfg.Field.Magnetic != DefaultMagneticField {
		t.Errorf("expected default field, got %f", cfg.Field.Magnetic)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("field:\n  voltage: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("heavy")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Field.Voltage != 7 {
		t.Errorf("expected voltage 7, got %f", cfg.Field.Voltage)
	}
	if cfg.Particle.Mass != 4 {
		t.Errorf("expected preset mass 4, got %f", cfg.Particle.Mass)
	}
	if base.Field.Voltage != DefaultVoltage {
		t.Error("base config should not be modified")
	}
}
