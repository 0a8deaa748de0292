package feed

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile reads observations from an NDJSON file, one observation per
// line. Blank lines are skipped.
func ReadFile(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open observations file %s: %w", path, err)
	}
	defer file.Close()

	var observations []Observation
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var o Observation
		if err := json.Unmarshal([]byte(line), &o); err != nil {
			return nil, fmt.Errorf("invalid observation at %s:%d: %w", path, lineNo, err)
		}
		observations = append(observations, o)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading observations file %s: %w", path, err)
	}

	return observations, nil
}

// ReadDir walks a directory of JSON files, decoding one observation per
// file. Non-JSON files are skipped.
func ReadDir(dir string) ([]Observation, error) {
	var observations []Observation

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		var o Observation
		if err := json.NewDecoder(file).Decode(&o); err != nil {
			return fmt.Errorf("invalid observation in %s: %w", path, err)
		}
		observations = append(observations, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read observations from %s: %w", dir, err)
	}

	return observations, nil
}
