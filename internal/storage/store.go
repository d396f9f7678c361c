package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/springbench/internal/bench"
	"github.com/san-kum/springbench/internal/sim"
)

// Store persists simulation runs and benchmark reports under a base
// directory, one subdirectory per run.
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
	Timestamp   time.Time          `json:"timestamp"`
	Backend     string             `json:"backend"`
	Integrator  string             `json:"integrator"`
	Tolerance   float64            `json:"tolerance"`
	GridStart   float64            `json:"grid_start"`
	GridEnd     float64            `json:"grid_end"`
	Samples     int                `json:"samples"`
	Elapsed     float64            `json:"elapsed_seconds"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Params      map[string]float64 `json:"params"`
}

var stateHeader = []string{"time", "theta", "theta_dot", "x", "x_dot"}

// SaveRun writes metadata.json and states.csv for one simulation run and
// returns the generated run id.
func (s *Store) SaveRun(meta RunMetadata, traj *sim.Trajectory) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(stateHeader); err != nil {
		return "", err
	}

	for i := range traj.States {
		row := make([]string, 0, len(stateHeader))
		row = append(row, strconv.FormatFloat(traj.Times[i], 'f', 6, 64))
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveReport persists benchmark passes as report.json and returns the
// report id.
func (s *Store) SaveReport(passes []bench.Pass) (string, error) {
	reportID := fmt.Sprintf("bench_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, reportID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	report := struct {
		ID        string       `json:"id"`
		Timestamp time.Time    `json:"timestamp"`
		Passes    []bench.Pass `json:"passes"`
	}{reportID, time.Now(), passes}

	if err := writeJSON(filepath.Join(runDir, "report.json"), report); err != nil {
		return "", err
	}
	return reportID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads states.csv back as a trajectory.
func (s *Store) LoadStates(runID string) (*sim.Trajectory, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("empty states file for run %s", runID)
	}

	traj := &sim.Trajectory{
		States: make([]sim.State, 0, len(records)-1),
		Times:  make([]float64, 0, len(records)-1),
	}

	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		state := make(sim.State, 0, len(rec)-1)
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			state = append(state, v)
		}
		traj.Times = append(traj.Times, t)
		traj.States = append(traj.States, state)
	}

	return traj, nil
}

// ExportJSON writes a run's metadata and trajectory to w as one document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	doc := struct {
		Meta   *RunMetadata `json:"meta"`
		Times  []float64    `json:"times"`
		States []sim.State  `json:"states"`
	}{meta, traj.Times, traj.States}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
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
