package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"

	"repo-crawler/pkg/models"
	"repo-crawler/pkg/utils"
)

// InputData is the crawl request loaded from the user-supplied JSON
// file: what to search for, how to egress, and which entity type to
// target.
type InputData struct {
	Keywords []string `json:"keywords"`
	Proxies  []string `json:"proxies,omitempty"`
	Type     string   `json:"type"`
}

// EntityType returns the normalized entity type for the crawl.
// Call Validate first; on unvalidated input this may return an error.
func (in *InputData) EntityType() (models.EntityType, error) {
	return models.ParseEntityType(in.Type)
}

// Validate checks the crawl input before any network activity.
// All failures are fatal to the invocation.
func (in *InputData) Validate() error {
	if len(in.Keywords) == 0 {
		return fmt.Errorf("%w: keywords must not be empty", utils.ErrInvalidInput)
	}
	for i, kw := range in.Keywords {
		if kw == "" {
			return fmt.Errorf("%w: keyword at index %d is empty", utils.ErrInvalidInput, i)
		}
	}
	if _, err := models.ParseEntityType(in.Type); err != nil {
		return err
	}
	for _, p := range in.Proxies {
		if _, _, err := net.SplitHostPort(p); err != nil {
			return fmt.Errorf("%w: proxy %q is not host:port: %v", utils.ErrInvalidInput, p, err)
		}
	}
	return nil
}

// LoadInput reads and validates the crawl input JSON file
func LoadInput(path string) (*InputData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file %q: %w", path, err)
	}
	var in InputData
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: parse input file %q: %v", utils.ErrInvalidInput, path, err)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}
