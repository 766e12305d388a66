package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Curve is a reward history averaged over runs, one value per evaluation batch.
type Curve struct {
	Name   string
	Values []float64
}

type Setup struct {
	Config    any           `json:"config"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> for the results of one experiment.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteSetup(config any, start, end time.Time) error {
	setup := Setup{
		Config:    config,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	f, err := os.Create(filepath.Join(w.baseDir, "setup.json"))
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}

	return nil
}

// WriteCurves writes one row per evaluation batch with the step it was taken at and a
// column per curve. All curves must have the same length.
func (w *Writer) WriteCurves(interval int, curves []Curve) error {
	if len(curves) == 0 {
		return fmt.Errorf("failed to write curves: none given")
	}
	batches := len(curves[0].Values)
	for _, c := range curves {
		if len(c.Values) != batches {
			return fmt.Errorf("failed to write curves: %s has %d batches, expected %d", c.Name, len(c.Values), batches)
		}
	}

	f, err := os.Create(filepath.Join(w.baseDir, "curves.csv"))
	if err != nil {
		return fmt.Errorf("failed to create curves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	header := []string{"batch", "step"}
	for _, c := range curves {
		header = append(header, c.Name)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write curves header: %w", err)
	}

	// Write each row
	for i := 0; i < batches; i++ {
		row := []string{strconv.Itoa(i), strconv.Itoa(i * interval)}
		for _, c := range curves {
			row = append(row, strconv.FormatFloat(c.Values[i], 'f', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write curves row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush curves: %w", err)
	}
	return nil
}
