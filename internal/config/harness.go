package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"shuttle/internal/spec"
)

const SupportedSchema = "v1"

// LoadHarness parses a harness YAML, validates schema_version, and
// returns the parsed spec plus an absolute path to the transport config
// file (if set).
func LoadHarness(path string) (spec.File, string, error) {
	var f spec.File
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, "", err
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, "", err
	}
	if f.SchemaVersion == "" {
		f.SchemaVersion = SupportedSchema
	}
	if f.SchemaVersion != SupportedSchema {
		return f, "", fmt.Errorf("harness schema_version %q not supported (want %q)", f.SchemaVersion, SupportedSchema)
	}
	confPath := f.Transport.Config
	if confPath != "" && !filepath.IsAbs(confPath) {
		confPath = filepath.Join(filepath.Dir(path), confPath)
	}
	return f, confPath, nil
}
