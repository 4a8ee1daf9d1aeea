package automation

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
)

// Scenario is a scripted sequence of runs loaded from YAML.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the defaults for one run. Unset fields keep the
// values from config.DefaultConfig.
type ScenarioStep struct {
	Name   string        `yaml:"name"`
	Config config.Config `yaml:",inline"`
}

// LoadScenario loads a scenario from a YAML file. Each step starts from the
// default configuration.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	scenario := &Scenario{Name: raw.Name, Description: raw.Description}
	for i, node := range raw.Steps {
		step := ScenarioStep{Config: *config.DefaultConfig()}
		if err := node.Decode(&step); err != nil {
			return nil, fmt.Errorf("parse %s step %d: %w", path, i+1, err)
		}
		if step.Name == "" {
			step.Name = fmt.Sprintf("%s/%s", step.Config.Equation, step.Config.Method)
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %s has no steps", dynamo.ErrInvalidConfig, path)
	}

	return scenario, nil
}

// RunScenario executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario, runner *experiment.Runner) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.Config
		result, err := runner.Run(ctx, &cfg)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Sweep parameters.
const (
	ParamX0     = "x0"
	ParamEnd    = "t1"
	ParamPoints = "points"
)

// ParameterSweep runs the base configuration across evenly spaced values of
// one parameter.
type ParameterSweep struct {
	Base     config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	ParamValue  float64
	Final       float64
	MaxError    float64
	Evaluations int64
	Valid       bool
}

func (s *ParameterSweep) apply(cfg *config.Config, v float64) error {
	switch s.Param {
	case ParamX0:
		cfg.X0 = v
	case ParamEnd:
		cfg.Grid.End = v
	case ParamPoints:
		cfg.Grid.Points = int(math.Round(v))
	default:
		return fmt.Errorf("%w: cannot sweep %q (want %s, %s or %s)",
			dynamo.ErrInvalidConfig, s.Param, ParamX0, ParamEnd, ParamPoints)
	}
	return nil
}

// RunSweep executes a parameter sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, runner *experiment.Runner) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrInvalidConfig)
	}

	values := dynamo.Linspace(sweep.Min, sweep.Max, sweep.NumSteps)
	results := make([]SweepResult, 0, len(values))

	for _, v := range values {
		cfg := sweep.Base
		if err := sweep.apply(&cfg, v); err != nil {
			return nil, err
		}

		result, err := runner.Run(ctx, &cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}

		results = append(results, SweepResult{
			ParamValue:  v,
			Final:       result.Trajectory.Last(),
			MaxError:    result.MaxError(),
			Evaluations: result.Evaluations,
			Valid:       result.Valid,
		})
	}

	return results, nil
}
