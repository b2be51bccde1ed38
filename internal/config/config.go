// Package config loads and saves scenario files: the charged geometry,
// the test particle's initial conditions and the integration settings,
// as one YAML document.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmolina-v/efield/internal/geometry"
	"github.com/dmolina-v/efield/internal/particle"
	"github.com/dmolina-v/efield/internal/vec"
)

const (
	DefaultDt       = 0.05
	DefaultMaxSteps = 500
	DefaultMass     = 1e-3
	DefaultCharge   = -1e-6
)

type Config struct {
	Geometry GeometryConfig `yaml:"geometry"`
	Particle ParticleConfig `yaml:"particle"`
	Stepping SteppingConfig `yaml:"stepping"`
}

type GeometryConfig struct {
	Kind       string  `yaml:"kind"`
	Sigma      float64 `yaml:"sigma"`
	Radius     float64 `yaml:"radius"`
	Distance   float64 `yaml:"distance"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	N          int     `yaml:"n"`
	InvertSign bool    `yaml:"invert_sign"`
}

type ParticleConfig struct {
	Pos    [3]float64 `yaml:"pos"`
	Vel    [3]float64 `yaml:"vel"`
	Mass   float64    `yaml:"mass"`
	Charge float64    `yaml:"charge"`
}

type SteppingConfig struct {
	Dt       float64 `yaml:"dt"`
	MaxSteps int     `yaml:"max_steps"`
}

func DefaultConfig() *Config {
	return defaultFor(geometry.Sphere)
}

func defaultFor(kind geometry.Kind) *Config {
	g := geometry.Default(kind)
	return &Config{
		Geometry: GeometryConfig{
			Kind:       string(g.Kind),
			Sigma:      g.Sigma,
			Radius:     g.Radius,
			Distance:   g.Distance,
			Width:      g.Width,
			Height:     g.Height,
			N:          g.N,
			InvertSign: g.InvertSign,
		},
		Particle: ParticleConfig{
			Pos:    [3]float64{0, 0, g.Extent() - 1},
			Mass:   DefaultMass,
			Charge: DefaultCharge,
		},
		Stepping: SteppingConfig{
			Dt:       DefaultDt,
			MaxSteps: DefaultMaxSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GeometrySpec maps the YAML geometry block onto the validated form.
// The zero vacuum permittivity is filled in by geometry.Default.
func (c *Config) GeometrySpec() geometry.Config {
	g := geometry.Default(geometry.Kind(c.Geometry.Kind))
	g.Sigma = c.Geometry.Sigma
	g.Radius = c.Geometry.Radius
	g.Distance = c.Geometry.Distance
	g.Width = c.Geometry.Width
	g.Height = c.Geometry.Height
	g.N = c.Geometry.N
	g.InvertSign = c.Geometry.InvertSign
	return g
}

// InitialState maps the YAML particle block onto a kinematic state.
func (c *Config) InitialState() particle.State {
	return particle.State{
		Pos:    vec.Vec3{X: c.Particle.Pos[0], Y: c.Particle.Pos[1], Z: c.Particle.Pos[2]},
		Vel:    vec.Vec3{X: c.Particle.Vel[0], Y: c.Particle.Vel[1], Z: c.Particle.Vel[2]},
		Mass:   c.Particle.Mass,
		Charge: c.Particle.Charge,
	}
}

// StepSpec maps the YAML stepping block onto integration parameters.
func (c *Config) StepSpec() particle.StepConfig {
	return particle.StepConfig{Dt: c.Stepping.Dt, MaxSteps: c.Stepping.MaxSteps}
}
