package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/odestep/internal/dynamo"
)

const (
	DefaultEquation  = "cubic"
	DefaultMethod    = "rk4"
	DefaultStart     = 1.0
	DefaultEnd       = 2.0
	DefaultPoints    = 4
	DefaultTolerance = 1e-9
)

type Config struct {
	Equation   string     `yaml:"equation" toml:"equation"`
	Method     string     `yaml:"method" toml:"method"`
	X0         float64    `yaml:"x0" toml:"x0"`
	Grid       GridConfig `yaml:"grid" toml:"grid"`
	StrictGrid bool       `yaml:"strict_grid" toml:"strict_grid"`
	// Tolerance is the relative spacing tolerance used when StrictGrid is set.
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
}

type GridConfig struct {
	Start  float64 `yaml:"start" toml:"start"`
	End    float64 `yaml:"end" toml:"end"`
	Points int     `yaml:"points" toml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Equation: DefaultEquation,
		Method:   DefaultMethod,
		Grid: GridConfig{
			Start:  DefaultStart,
			End:    DefaultEnd,
			Points: DefaultPoints,
		},
		StrictGrid: true,
		Tolerance:  DefaultTolerance,
	}
}

// LoadInto decodes a config file over cfg. Keys absent from the file keep
// their current values. Files ending in .toml are decoded as TOML,
// everything else as YAML.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Equation == "":
		return fmt.Errorf("%w: equation is required", dynamo.ErrInvalidConfig)
	case c.Method == "":
		return fmt.Errorf("%w: method is required", dynamo.ErrInvalidConfig)
	case math.IsNaN(c.X0) || math.IsInf(c.X0, 0):
		return fmt.Errorf("%w: x0 must be finite, got %v", dynamo.ErrInvalidConfig, c.X0)
	case c.Grid.Points < 1:
		return fmt.Errorf("%w: grid needs at least one point, got %d", dynamo.ErrInvalidConfig, c.Grid.Points)
	case c.Grid.Points > 1 && !(c.Grid.End > c.Grid.Start):
		return fmt.Errorf("%w: grid end %g must exceed start %g", dynamo.ErrInvalidConfig, c.Grid.End, c.Grid.Start)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must be non-negative, got %g", dynamo.ErrInvalidConfig, c.Tolerance)
	}
	return nil
}

// TimeGrid returns the evenly spaced grid described by c.Grid.
func (c *Config) TimeGrid() dynamo.Grid {
	return dynamo.Linspace(c.Grid.Start, c.Grid.End, c.Grid.Points)
}
