// Package importer ingests task rows from external sources: CSV files
// with arbitrary column headers and GitHub issue trackers. Both produce
// plain task models; persistence is the caller's concern.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/schema"
)

// CSVResult holds the outcome of a CSV ingest. MissingRequired lists
// required canonical fields with no source column; it is a warning, not
// an error — the tasks are still usable.
type CSVResult struct {
	Tasks           []models.Task
	MissingRequired []string
}

// ReadCSV parses tasks out of a CSV stream. The first row is the
// header; it is matched against the canonical alias table. Input-level
// failures (unreadable stream, ragged rows, no header) are errors;
// per-cell problems degrade to empty values.
func ReadCSV(r io.Reader) (*CSVResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("importer: csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("importer: read csv header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("importer: read csv row: %w", err)
		}
		rows = append(rows, row)
	}

	records, missing := schema.Normalize(header, rows)
	tasks := make([]models.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, TaskFromRecord(rec))
	}
	return &CSVResult{Tasks: tasks, MissingRequired: missing}, nil
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string) (*CSVResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}
