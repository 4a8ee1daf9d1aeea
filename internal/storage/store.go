package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Equation    string             `json:"equation"`
	Method      string             `json:"method"`
	Timestamp   time.Time          `json:"timestamp"`
	X0          float64            `json:"x0"`
	Start       float64            `json:"start"`
	End         float64            `json:"end"`
	Points      int                `json:"points"`
	H           float64            `json:"h"`
	Evaluations int64              `json:"evaluations"`
	Valid       bool               `json:"valid"`
	HasExact    bool               `json:"has_exact"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	if len(result.Times) != len(result.Trajectory) {
		return "", fmt.Errorf("storage: %d times for %d states", len(result.Times), len(result.Trajectory))
	}

	runID := fmt.Sprintf("%s_%s_%s", result.Equation, result.Method, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Equation:    result.Equation,
		Method:      result.Method,
		Timestamp:   time.Now(),
		X0:          result.X0,
		Points:      len(result.Times),
		H:           result.Times.Step(),
		Evaluations: result.Evaluations,
		Valid:       result.Valid,
		HasExact:    result.Exact != nil,
		Metrics:     finiteMetrics(result.Metrics),
	}
	if len(result.Times) > 0 {
		meta.Start = result.Times[0]
		meta.End = result.Times[len(result.Times)-1]
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result); err != nil {
		return "", err
	}

	return runID, nil
}

// finiteMetrics drops NaN and Inf, which JSON cannot encode.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, result *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	withExact := len(result.Exact) == len(result.Trajectory) && result.Exact != nil
	header := []string{"time", "x"}
	if withExact {
		header = append(header, "exact")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Trajectory {
		row := []string{formatFloat(result.Times[i]), formatFloat(result.Trajectory[i])}
		if withExact {
			row = append(row, formatFloat(result.Exact[i]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadTrajectory reads the stored grid and states. exact is nil when the run
// was saved without a closed-form reference.
func (s *Store) LoadTrajectory(runID string) (times dynamo.Grid, traj, exact dynamo.Trajectory, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return dynamo.Grid{}, dynamo.Trajectory{}, nil, nil
	}

	withExact := len(records[0]) > 2
	times = make(dynamo.Grid, 0, len(records)-1)
	traj = make(dynamo.Trajectory, 0, len(records)-1)
	if withExact {
		exact = make(dynamo.Trajectory, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, nil, nil, fmt.Errorf("storage: %s row %d: want at least 2 fields, got %d", runID, i+1, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, nil, nil, fmt.Errorf("storage: %s row %d: %w", runID, i+1, err)
			}
		}
		times = append(times, vals[0])
		traj = append(traj, vals[1])
		if withExact && len(vals) > 2 {
			exact = append(exact, vals[2])
		}
	}

	return times, traj, exact, nil
}
