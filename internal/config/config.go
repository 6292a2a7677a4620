package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avshek/oscilab/internal/sim"
	"github.com/avshek/oscilab/internal/stiffness"
)

const (
	DefaultStart  = 0.0
	DefaultEnd    = 20.0
	DefaultPoints = 1000
)

// Config is the yaml-facing description of a simulation run.
type Config struct {
	Integrator        string      `yaml:"integrator"`
	Masses            []float64   `yaml:"masses"`
	Stiffness         [][]float64 `yaml:"stiffness"`
	InitDisplacements []float64   `yaml:"init_displacements"`
	InitVelocities    []float64   `yaml:"init_velocities"`
	Start             float64     `yaml:"start"`
	End               float64     `yaml:"end"`
	Points            int         `yaml:"points"`
	Floor             float64     `yaml:"eigenvalue_floor"`
	FrameRate         int         `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Start:      DefaultStart,
		End:        DefaultEnd,
		Points:     DefaultPoints,
		Floor:      stiffness.DefaultFloor,
		FrameRate:  30,
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

// Scenario converts the config into the explicit struct consumed by
// sim.Simulator.Run.
func (c *Config) Scenario() sim.Scenario {
	return sim.Scenario{
		Masses:            c.Masses,
		Stiffness:         c.Stiffness,
		InitDisplacements: c.InitDisplacements,
		InitVelocities:    c.InitVelocities,
		Start:             c.Start,
		End:               c.End,
		Points:            c.Points,
		Floor:             c.Floor,
	}
}
