package feed

import (
	"encoding/json"
	"fmt"
	"os"
)

// Override pins manually corrected size or category data for a product id.
// Source sites omit sizes for some listings and misfile others; overrides
// patch those before reconciliation.
type Override struct {
	ID       string `json:"id"`
	Size     string `json:"size,omitempty"`
	Category string `json:"category,omitempty"`
}

// LoadOverrides reads a JSON array of overrides from path. An empty path
// means no overrides.
func LoadOverrides(path string) ([]Override, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	var overrides []Override
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file %s: %w", path, err)
	}

	return overrides, nil
}
