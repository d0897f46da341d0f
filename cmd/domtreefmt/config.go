package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Job is one batch-manifest entry: read Input, pretty-print it, write the
// result to Output.
type Job struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Manifest is the top-level shape of a -config YAML file.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// loadManifest reads and decodes a batch manifest from path.
func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}
