package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML job file and overlays it on the defaults, so a file
// only needs to name the fields it changes.
func LoadFile(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}

	job := Default()
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse job file %s: %w", path, err)
	}
	return &job, nil
}

// SaveFile writes the job to a YAML file, for reuse with --job-file.
func SaveFile(j *Job, path string) error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("serialize job: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write job file: %w", err)
	}
	return nil
}
