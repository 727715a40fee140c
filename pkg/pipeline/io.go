// pkg/pipeline/io.go
package pipeline

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"datagovern/pkg/model"
)

// LoadCSV reads the input extract. Every value is kept as raw text; type
// coercion is the cleaner's and validator's job.
func LoadCSV(path string) ([]string, []model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("input file %s has no header row", path)
	}

	header := rows[0]
	records := make([]model.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.RecordFromValues(row))
	}

	return header, records, nil
}

// WriteCSV saves a dataset with the fixed schema header. The file content is
// assembled in memory and written as a single whole-file operation.
func WriteCSV(path string, records []model.Record) error {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	if err := writer.Write(model.Columns()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		if err := writer.Write(rec.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

// writeText saves a report as a single whole-file write.
func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
