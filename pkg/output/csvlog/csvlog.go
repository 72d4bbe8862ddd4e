// Package csvlog appends samples to a CSV file, one row per sample,
// matching the layout the host dashboard consumed.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/user7217/arduino-ecg/pkg/output"
	"github.com/user7217/arduino-ecg/pkg/sensor"
)

var header = []string{"timestamp", "raw", "filtered", "bpm", "event"}

type CSVOutput struct {
	f *os.File
	w *csv.Writer
}

func NewCSV(path string) (output.Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv log: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("csv log: %w", err)
	}
	return &CSVOutput{f: f, w: w}, nil
}

func (c *CSVOutput) Publish(r sensor.Reading) error {
	rec := []string{
		strconv.FormatFloat(float64(r.Timestamp.UnixNano())/1e9, 'f', 6, 64),
		strconv.FormatInt(int64(r.Raw), 10),
		strconv.FormatFloat(r.Filtered, 'f', 3, 64),
		strconv.FormatFloat(r.BPM, 'f', 1, 64),
		r.Event,
	}
	if err := c.w.Write(rec); err != nil {
		return fmt.Errorf("csv log: %w", err)
	}
	// flush per row so a power cut loses at most the last sample
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("csv log: %w", err)
	}
	return nil
}

func (c *CSVOutput) Close() error {
	c.w.Flush()
	return c.f.Close()
}
