package storage

import (
	"encoding/json"
	"io"
	"math"

	"github.com/san-kum/odestep/internal/dynamo"
)

type ExportData struct {
	ID         string             `json:"id"`
	Equation   string             `json:"equation"`
	Method     string             `json:"method"`
	X0         float64            `json:"x0"`
	H          float64            `json:"h"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Trajectory []*float64         `json:"trajectory"`
	Exact      []*float64         `json:"exact,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as a single JSON document. Non-finite
// states and exact values are written as null.
func ExportJSON(w io.Writer, meta *RunMetadata, times dynamo.Grid, traj, exact dynamo.Trajectory) error {
	data := ExportData{
		ID:         meta.ID,
		Equation:   meta.Equation,
		Method:     meta.Method,
		X0:         meta.X0,
		H:          meta.H,
		Steps:      len(times),
		Times:      times,
		Trajectory: nullable(traj),
		Exact:      nullable(exact),
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// nullable maps non-finite values to nil. A nil slice stays nil.
func nullable(xs []float64) []*float64 {
	if xs == nil {
		return nil
	}
	out := make([]*float64, len(xs))
	for i, v := range xs {
		v := v
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[i] = &v
		}
	}
	return out
}
