package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/moran/internal/experiment"
	"github.com/san-kum/moran/internal/moran"
)

var ErrWrongVariant = errors.New("storage: run has a different trajectory kind")

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
	ID         string             `json:"id"`
	Variant    string             `json:"variant"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	FreqA      float64            `json:"freq_a"`
	Advantage  float64            `json:"advantage"`
	Size       int                `json:"population_size"`
	Iterations int                `json:"iterations"`
	Steps      int                `json:"steps"`
	Final      moran.Composition  `json:"final"`
	Metrics    map[string]float64 `json:"metrics"`
}

// HasLifetimes reports whether the run recorded lifetimes rather than counts.
func (m *RunMetadata) HasLifetimes() bool {
	return m.Variant == experiment.VariantLifetime
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", result.Variant, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Variant:    result.Variant,
		Timestamp:  now,
		Seed:       result.Seed,
		FreqA:      result.Params.FreqA,
		Advantage:  result.Params.Advantage,
		Size:       result.Params.Size,
		Iterations: result.Params.Iterations,
		Steps:      result.Steps(),
		Final:      result.Final,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, "trajectory.csv"), result); err != nil {
		return "", err
	}

	return runID, nil
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
	if err := WriteCSV(w, result.Counts, result.Lifetimes); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteCSV writes a counting trajectory as step,count_a,count_b or, when
// lifetimes is non-nil, a lifetime trajectory as step,lifetime.
func WriteCSV(w *csv.Writer, counts []moran.Composition, lifetimes []int) error {
	if lifetimes != nil {
		if err := w.Write([]string{"step", "lifetime"}); err != nil {
			return err
		}
		for i, lt := range lifetimes {
			if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(lt)}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := w.Write([]string{"step", "count_a", "count_b"}); err != nil {
		return err
	}
	for i, c := range counts {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(c.A), strconv.Itoa(c.B)}); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, oldest first.
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

func (s *Store) readTrajectory(runID string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}

func (s *Store) LoadCounts(runID string) ([]moran.Composition, error) {
	records, err := s.readTrajectory(runID)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) != 3 {
		return nil, fmt.Errorf("%w: %s", ErrWrongVariant, runID)
	}

	counts := make([]moran.Composition, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 3 {
			continue
		}
		a, errA := strconv.Atoi(rec[1])
		b, errB := strconv.Atoi(rec[2])
		if errA != nil || errB != nil {
			return nil, fmt.Errorf("trajectory %s line %d: malformed counts %v", runID, i+1, rec)
		}
		counts = append(counts, moran.Composition{A: a, B: b})
	}
	return counts, nil
}

func (s *Store) LoadLifetimes(runID string) ([]int, error) {
	records, err := s.readTrajectory(runID)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 && len(records[0]) != 2 {
		return nil, fmt.Errorf("%w: %s", ErrWrongVariant, runID)
	}

	lifetimes := make([]int, 0, len(records))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 2 {
			continue
		}
		lt, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("trajectory %s line %d: malformed lifetime %q", runID, i+1, rec[1])
		}
		lifetimes = append(lifetimes, lt)
	}
	return lifetimes, nil
}
