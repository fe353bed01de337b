package config

import "sort"

// Presets holds named starting points. Each entry is applied on top of
// DefaultConfig, so only the differences are listed.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"gentle": func(c *Config) {
		c.Field.Voltage = 1.0
		c.Duration = 120
	},
	"heavy": func(c *Config) {
		c.Particle.Mass = 4.0
		c.Particle.Charge = 2.0
		c.Field.Magnetic = 1.0
		c.Duration = 90
	},
	"decelerate": func(c *Config) {
		c.Field.Voltage = -1.0
		c.Particle.InitialRadius = 12
		c.Particle.InitialSpeed = 8
		c.Duration = 40
	},
	"contained": func(c *Config) {
		c.Boundary.Radius = 15
		c.Boundary.ExtractionEnabled = false
		c.Duration = 60
	},
	"antiproton": func(c *Config) {
		c.Particle.Charge = -1.0
		c.Field.Voltage = -3.0
	},
	"fast": func(c *Config) {
		c.Field.Magnetic = 2.0
		c.Field.Voltage = 8.0
		c.Dt = 0.002
		c.Duration = 30
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
