package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// LoadSuite loads and parses a suite from a YAML file. It applies rule
// defaults and validates the suite structure.
func LoadSuite(path string) (*Suite, error) {
	// Security: Use os.OpenRoot to prevent path traversal attacks
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open suite directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open suite: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return LoadSuiteFromReader(file)
}

// LoadSuiteFromReader loads a suite from an io.Reader.
// This is useful for testing with in-memory YAML data.
func LoadSuiteFromReader(r io.Reader) (*Suite, error) {
	var suite Suite

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to decode suite YAML: %w", err)
	}

	suite.ApplyDefaults()

	if err := Validate(&suite); err != nil {
		return nil, err
	}

	return &suite, nil
}
