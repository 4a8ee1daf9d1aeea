package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"cubic": {
		"example": {
			Equation: "cubic", Method: "rk4", X0: 0,
			Grid: GridConfig{Start: 1, End: 2, Points: 4},
		},
		"fine": {
			Equation: "cubic", Method: "rk4", X0: 0,
			Grid: GridConfig{Start: 1, End: 2, Points: 101},
		},
		"long": {
			Equation: "cubic", Method: "rk4", X0: 1,
			Grid: GridConfig{Start: 0, End: 20, Points: 401},
		},
	},
	"decay": {
		"unit": {
			Equation: "decay", Method: "rk4", X0: 1,
			Grid: GridConfig{Start: 0, End: 5, Points: 51},
		},
		"coarse": {
			Equation: "decay", Method: "euler", X0: 1,
			Grid: GridConfig{Start: 0, End: 5, Points: 6},
		},
	},
	"logistic": {
		"sigmoid": {
			Equation: "logistic", Method: "rk4", X0: 0.0025,
			Grid: GridConfig{Start: 0, End: 12, Points: 121},
		},
	},
	"cosine": {
		"period": {
			Equation: "cosine", Method: "rk2", X0: 0,
			Grid: GridConfig{Start: 0, End: 2 * math.Pi, Points: 65},
		},
	},
}

// GetPreset returns a copy of the named preset with strict grid checking on,
// or nil when either name is unknown.
func GetPreset(equation, preset string) *Config {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	cfg, ok := eqPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.StrictGrid = true
	c.Tolerance = DefaultTolerance
	return &c
}

func ListPresets(equation string) []string {
	eqPresets, ok := Presets[equation]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(eqPresets))
	for name := range eqPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
