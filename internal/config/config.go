package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt            = lorentz.DefaultTimeStep
	DefaultDuration      = 60.0
	DefaultMass          = 1.0
	DefaultCharge        = 1.0
	DefaultMagneticField = 0.5
	DefaultVoltage       = 3.0
	DefaultInitialRadius = 5.0
	DefaultInitialSpeed  = 3.0
	DefaultSampleEvery   = 1
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name        string          `yaml:"name" toml:"name" json:"name"`
	Integrator  string          `yaml:"integrator" toml:"integrator" json:"integrator"`
	Dt          float64         `yaml:"dt" toml:"dt" json:"dt"`
	Duration    float64         `yaml:"duration" toml:"duration" json:"duration"`
	SampleEvery int             `yaml:"sample_every" toml:"sample_every" json:"sample_every"`
	Particle    ParticleConfig  `yaml:"particle" toml:"particle" json:"particle"`
	Field       FieldConfig     `yaml:"field" toml:"field" json:"field"`
	Boundary    BoundaryConfig  `yaml:"boundary" toml:"boundary" json:"boundary"`
	Detection   DetectionConfig `yaml:"detection" toml:"detection" json:"detection"`
}

type ParticleConfig struct {
	Mass          float64 `yaml:"mass" toml:"mass" json:"mass"`
	Charge        float64 `yaml:"charge" toml:"charge" json:"charge"`
	InitialRadius float64 `yaml:"initial_radius" toml:"initial_radius" json:"initial_radius"`
	InitialSpeed  float64 `yaml:"initial_speed" toml:"initial_speed" json:"initial_speed"`
}

type FieldConfig struct {
	Magnetic float64 `yaml:"magnetic" toml:"magnetic" json:"magnetic"`
	Voltage  float64 `yaml:"voltage" toml:"voltage" json:"voltage"`
}

type BoundaryConfig struct {
	Radius              float64 `yaml:"radius" toml:"radius" json:"radius"`
	ExtractionEnabled   bool    `yaml:"extraction_enabled" toml:"extraction_enabled" json:"extraction_enabled"`
	ExtractionAngle     float64 `yaml:"extraction_angle" toml:"extraction_angle" json:"extraction_angle"`
	ExtractionTolerance float64 `yaml:"extraction_tolerance" toml:"extraction_tolerance" json:"extraction_tolerance"`
}

type DetectionConfig struct {
	Cooldown float64 `yaml:"cooldown" toml:"cooldown" json:"cooldown"`
	MaxSpeed float64 `yaml:"max_speed" toml:"max_speed" json:"max_speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "classic",
		Integrator:  "leapfrog",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
		Particle: ParticleConfig{
			Mass:          DefaultMass,
			Charge:        DefaultCharge,
			InitialRadius: DefaultInitialRadius,
			InitialSpeed:  DefaultInitialSpeed,
		},
		Field: FieldConfig{
			Magnetic: DefaultMagneticField,
			Voltage:  DefaultVoltage,
		},
		Boundary: BoundaryConfig{
			Radius:              lorentz.DefaultBoundaryRadius,
			ExtractionEnabled:   true,
			ExtractionAngle:     lorentz.DefaultExtractionAngle,
			ExtractionTolerance: lorentz.DefaultExtractionTolerance,
		},
		Detection: DetectionConfig{
			Cooldown: lorentz.DefaultCooldown,
			MaxSpeed: lorentz.DefaultMaxSpeed,
		},
	}
}

// Load reads a YAML file, or a TOML file when the extension is .toml.
// Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes path on top of a copy of base, so a file only needs
// the fields that differ from, say, a preset.
func LoadOver(path string, base *Config) (*Config, error) {
	cfg := base.Clone()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	switch {
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case !(c.Duration > 0):
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	case !(c.Particle.Mass > 0):
		return fmt.Errorf("%w: mass must be positive, got %g", ErrInvalidConfig, c.Particle.Mass)
	case c.Particle.InitialRadius < 0:
		return fmt.Errorf("%w: initial radius must not be negative, got %g", ErrInvalidConfig, c.Particle.InitialRadius)
	case c.Boundary.Radius > 0 && c.Particle.InitialRadius >= c.Boundary.Radius:
		return fmt.Errorf("%w: initial radius %g lies outside the boundary %g", ErrInvalidConfig, c.Particle.InitialRadius, c.Boundary.Radius)
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: sample_every must not be negative, got %d", ErrInvalidConfig, c.SampleEvery)
	}
	return nil
}

func (c *Config) Params() lorentz.Params {
	return lorentz.Params{
		Mass:                c.Particle.Mass,
		Charge:              c.Particle.Charge,
		MagneticField:       c.Field.Magnetic,
		Voltage:             c.Field.Voltage,
		TimeStep:            c.Dt,
		BoundaryRadius:      c.Boundary.Radius,
		GapCrossingCooldown: c.Detection.Cooldown,
		MaxSpeed:            c.Detection.MaxSpeed,
		ExtractionEnabled:   c.Boundary.ExtractionEnabled,
		ExtractionAngle:     c.Boundary.ExtractionAngle,
		ExtractionTolerance: c.Boundary.ExtractionTolerance,
	}
}

// InitialSpeed is the launch speed: the speed of a circular orbit about
// the field axis at the initial radius, or the configured minimum if that
// is faster.
func (c *Config) InitialSpeed() float64 {
	circular := 0.0
	if c.Particle.Mass > 0 {
		circular = c.Particle.InitialRadius * math.Abs(c.Particle.Charge*c.Field.Magnetic) / c.Particle.Mass
	}
	return math.Max(circular, c.Particle.InitialSpeed)
}

// InitialState places the particle on the +X axis moving tangentially in
// the sense the field turns it: along +Z when q·B > 0 (counterclockwise)
// and along -Z when q·B < 0 (clockwise), so the orbit curls toward the axis
// and reaches the gap.
func (c *Config) InitialState() *lorentz.State {
	speed := c.InitialSpeed()
	if c.Particle.Charge*c.Field.Magnetic < 0 {
		speed = -speed
	}
	return lorentz.NewState(
		r3.Vec{X: c.Particle.InitialRadius},
		r3.Vec{Z: speed},
	)
}

// GetParams lists the tunable scalar parameters by name.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":            c.Particle.Mass,
		"charge":          c.Particle.Charge,
		"magnetic_field":  c.Field.Magnetic,
		"voltage":         c.Field.Voltage,
		"boundary_radius": c.Boundary.Radius,
		"initial_radius":  c.Particle.InitialRadius,
		"initial_speed":   c.Particle.InitialSpeed,
		"cooldown":        c.Detection.Cooldown,
		"max_speed":       c.Detection.MaxSpeed,
		"dt":              c.Dt,
		"duration":        c.Duration,
	}
}

// ParamNames returns the keys of GetParams in sorted order.
func ParamNames() []string {
	names := make([]string, 0, 11)
	for k := range DefaultConfig().GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "mass":
		c.Particle.Mass = v
	case "charge":
		c.Particle.Charge = v
	case "magnetic_field":
		c.Field.Magnetic = v
	case "voltage":
		c.Field.Voltage = v
	case "boundary_radius":
		c.Boundary.Radius = v
	case "initial_radius":
		c.Particle.InitialRadius = v
	case "initial_speed":
		c.Particle.InitialSpeed = v
	case "cooldown":
		c.Detection.Cooldown = v
	case "max_speed":
		c.Detection.MaxSpeed = v
	case "dt":
		c.Dt = v
	case "duration":
		c.Duration = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
