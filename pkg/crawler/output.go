package crawler

import (
	"encoding/json"
	"fmt"
	"os"

	"repo-crawler/pkg/models"
)

// WriteResults serializes the records as an indented JSON array to
// path, overwriting any existing file.
func WriteResults(path string, records []models.Record) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results to %q: %w", path, err)
	}
	return nil
}
