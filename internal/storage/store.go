package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/brim/internal/experiment"
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

// RunMetadata describes a stored build.
type RunMetadata struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	RootType    string         `json:"root_type"`
	Timestamp   time.Time      `json:"timestamp"`
	Duration    time.Duration  `json:"duration_ns"`
	Components  map[string]int `json:"components"`
	Counts      map[string]int `json:"counts"`
	Coordinates []string       `json:"coordinates"`
	Speeds      []string       `json:"speeds"`
}

// SymbolRecord is one row of symbols.csv.
type SymbolRecord struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       float64 `json:"value"`
	HasValue    bool    `json:"has_value"`
}

func metadataOf(res *experiment.Result) RunMetadata {
	sys := res.System
	meta := RunMetadata{
		ID:         res.ID,
		Name:       res.Name,
		RootType:   res.Root.Type().Name,
		Timestamp:  res.Started,
		Duration:   res.Duration,
		Components: res.Components,
		Counts: map[string]int{
			"bodies":       len(sys.Bodies()),
			"coordinates":  len(sys.Q()),
			"speeds":       len(sys.U()),
			"holonomic":    len(sys.Holonomic()),
			"nonholonomic": len(sys.Nonholonomic()),
			"loads":        len(sys.Loads()),
		},
	}
	for _, q := range sys.Q() {
		meta.Coordinates = append(meta.Coordinates, q.String())
	}
	for _, u := range sys.U() {
		meta.Speeds = append(meta.Speeds, u.String())
	}
	return meta
}

// Symbols lists the described primitives of a build with their parameter
// values, sorted by name.
func Symbols(res *experiment.Result) []SymbolRecord {
	var out []SymbolRecord
	for e, desc := range res.Root.Core().Descriptions() {
		rec := SymbolRecord{Name: e.String(), Description: desc}
		rec.Value, rec.HasValue = res.Params[rec.Name]
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Save writes metadata.json and symbols.csv into a directory named after
// the build id and returns that id.
func (s *Store) Save(res *experiment.Result) (string, error) {
	runDir := filepath.Join(s.baseDir, res.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metadataOf(res)); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "symbols.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"name", "description", "value"}); err != nil {
		return "", err
	}
	for _, rec := range Symbols(res) {
		value := ""
		if rec.HasValue {
			value = strconv.FormatFloat(rec.Value, 'g', -1, 64)
		}
		if err := w.Write([]string{rec.Name, rec.Description, value}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return res.ID, nil
}

// List returns the metadata of all stored builds, oldest first.
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

func (s *Store) LoadSymbols(runID string) ([]SymbolRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "symbols.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []SymbolRecord{}, nil
	}

	out := make([]SymbolRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("storage: symbols.csv line %d: expected 3 fields, got %d", i+2, len(record))
		}
		rec := SymbolRecord{Name: record[0], Description: record[1]}
		if record[2] != "" {
			if rec.Value, err = strconv.ParseFloat(record[2], 64); err != nil {
				return nil, fmt.Errorf("storage: symbols.csv line %d: %w", i+2, err)
			}
			rec.HasValue = true
		}
		out = append(out, rec)
	}
	return out, nil
}
