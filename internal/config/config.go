package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridStart = 0.0
	DefaultGridEnd   = 10.0
	DefaultSamples   = 200000
	DefaultTolerance = 1e-6
)

type Config struct {
	Backend   string          `yaml:"backend"`
	Tolerance float64         `yaml:"tolerance"`
	Physics   PhysicsConfig   `yaml:"physics"`
	InitState InitStateConfig `yaml:"init_state"`
	Grid      GridConfig      `yaml:"grid"`
}

type PhysicsConfig struct {
	SpringMass float64 `yaml:"spring_mass"`
	Stiffness  float64 `yaml:"stiffness"`
	RestLength float64 `yaml:"rest_length"`
	BobMass    float64 `yaml:"bob_mass"`
	Gravity    float64 `yaml:"gravity"`
}

type InitStateConfig struct {
	Theta  float64 `yaml:"theta"`
	Omega  float64 `yaml:"omega"`
	Ext    float64 `yaml:"ext"`
	ExtVel float64 `yaml:"ext_vel"`
}

type GridConfig struct {
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Samples int     `yaml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:   "vectorized",
		Tolerance: DefaultTolerance,
		Physics: PhysicsConfig{
			SpringMass: 1.0,
			Stiffness:  1000.0,
			RestLength: 0.03,
			BobMass:    1.0,
			Gravity:    9.8,
		},
		InitState: InitStateConfig{
			Theta: 1.5707963267948966,
			Ext:   1.0 * 9.8 / 1000.0,
		},
		Grid: GridConfig{
			Start:   DefaultGridStart,
			End:     DefaultGridEnd,
			Samples: DefaultSamples,
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
		return nil, err
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

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.Theta, c.InitState.Omega, c.InitState.Ext, c.InitState.ExtVel}
}

func (c *Config) GetPhysicsParams() map[string]float64 {
	return map[string]float64{
		"spring_mass": c.Physics.SpringMass,
		"stiffness":   c.Physics.Stiffness,
		"rest_length": c.Physics.RestLength,
		"bob_mass":    c.Physics.BobMass,
		"gravity":     c.Physics.Gravity,
	}
}
