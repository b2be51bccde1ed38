package config

import "github.com/dmolina-v/efield/internal/geometry"

func preset(kind geometry.Kind, mutate func(*Config)) *Config {
	cfg := defaultFor(kind)
	mutate(cfg)
	return cfg
}

// Presets are ready-made scenarios keyed by geometry kind then name.
var Presets = map[string]map[string]*Config{
	"plate": {
		"drop": preset(geometry.Plate, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 0.8}
		}),
		"graze": preset(geometry.Plate, func(c *Config) {
			c.Particle.Pos = [3]float64{-0.8, 0, 0.3}
			c.Particle.Vel = [3]float64{0.5, 0, 0}
		}),
		"repelled": preset(geometry.Plate, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 0.4}
			c.Particle.Charge = 1e-6
			c.Stepping.MaxSteps = 200
		}),
	},
	"sphere": {
		"infall": preset(geometry.Sphere, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 2.0}
		}),
		"flyby": preset(geometry.Sphere, func(c *Config) {
			c.Particle.Pos = [3]float64{-2.5, 1.2, 0}
			c.Particle.Vel = [3]float64{1.5, 0, 0}
			c.Particle.Charge = 1e-6
			c.Stepping.Dt = 0.02
			c.Stepping.MaxSteps = 400
		}),
	},
	"cylinder": {
		"sidefall": preset(geometry.Cylinder, func(c *Config) {
			c.Particle.Pos = [3]float64{2.0, 0, 0}
		}),
		"axial": preset(geometry.Cylinder, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 2.5}
			c.Stepping.Dt = 0.02
		}),
	},
	"ring": {
		"axis": preset(geometry.Ring, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 1.5}
		}),
		"offaxis": preset(geometry.Ring, func(c *Config) {
			c.Particle.Pos = [3]float64{0.4, 0, 1.5}
			c.Stepping.MaxSteps = 800
		}),
	},
	"parallel_plates": {
		"midgap": preset(geometry.ParallelPlates, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0, 0.1}
			c.Stepping.Dt = 0.02
		}),
		"launched": preset(geometry.ParallelPlates, func(c *Config) {
			c.Particle.Pos = [3]float64{-0.8, 0, 0}
			c.Particle.Vel = [3]float64{1.0, 0, 0.2}
			c.Stepping.Dt = 0.02
			c.Stepping.MaxSteps = 400
		}),
	},
	"two_spheres": {
		"between": preset(geometry.TwoSpheres, func(c *Config) {
			c.Particle.Pos = [3]float64{0, 0.6, 0}
			c.Stepping.Dt = 0.02
		}),
		"capture": preset(geometry.TwoSpheres, func(c *Config) {
			c.Particle.Pos = [3]float64{2.0, 0, 0}
			c.Particle.Charge = 1e-6
			c.Stepping.MaxSteps = 600
		}),
	},
}

func GetPreset(kind, name string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	cfg, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	return names
}
