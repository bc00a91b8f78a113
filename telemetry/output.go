package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slide/config"
)

// RunInfo identifies one run in its output directory.
type RunInfo struct {
	ID          string    `yaml:"id"`
	Started     time.Time `yaml:"started"`
	Mode        string    `yaml:"mode"`
	Level       string    `yaml:"level"`
	Fingerprint string    `yaml:"fingerprint"`
	Script      string    `yaml:"script,omitempty"`
	Ticks       int       `yaml:"ticks,omitempty"`
}

// NewRunInfo creates run metadata with a fresh id.
func NewRunInfo(mode, level, fingerprint string) RunInfo {
	return RunInfo{
		ID:          uuid.NewString(),
		Started:     time.Now().UTC(),
		Mode:        mode,
		Level:       level,
		Fingerprint: fingerprint,
	}
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir          string
	movementFile *os.File
	perfFile     *os.File
	bookmarkFile *os.File
	snapshots    int

	// Track if headers have been written
	movementHeaderWritten bool
	perfHeaderWritten     bool
	bookmarkHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "movement.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating movement.csv: %w", err)
	}
	om.movementFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.movementFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		om.movementFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating bookmarks.csv: %w", err)
	}
	om.bookmarkFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRun saves run metadata to run.yaml. Called at start and again at
// shutdown with the final tick count.
func (om *OutputManager) WriteRun(info RunInfo) error {
	if om == nil {
		return nil
	}
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshaling run info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "run.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing run.yaml: %w", err)
	}
	return nil
}

// WriteMovement writes a window stats record to movement.csv.
func (om *OutputManager) WriteMovement(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]WindowStats{stats}, om.movementFile, &om.movementHeaderWritten); err != nil {
		return fmt.Errorf("writing movement: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]PerfStatsCSV{stats.ToCSV(windowEnd)}, om.perfFile, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := writeRecords([]Bookmark{b}, om.bookmarkFile, &om.bookmarkHeaderWritten); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// writeRecords marshals with headers on the first call only.
func writeRecords(records any, f *os.File, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, f)
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// WriteSnapshot saves a stuck snapshot under snapshots/ unless limit have
// already been written. Returns the empty path when skipped.
func (om *OutputManager) WriteSnapshot(s *Snapshot, limit int) (string, error) {
	if om == nil || (limit > 0 && om.snapshots >= limit) {
		return "", nil
	}
	path, err := SaveSnapshot(s, filepath.Join(om.dir, "snapshots"))
	if err != nil {
		return "", err
	}
	om.snapshots++
	return path, nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.movementFile, om.perfFile, om.bookmarkFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
