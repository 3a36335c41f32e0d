package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// klaxon.toml is optional; flags override whatever it sets.
type fileConfig struct {
	Output   outputConfig   `toml:"output"`
	Crashlog crashlogConfig `toml:"crashlog"`
	Simulate simulateConfig `toml:"simulate"`
}

type outputConfig struct {
	Quiet bool `toml:"quiet"`
}

type crashlogConfig struct {
	Dir string `toml:"dir"`
}

type simulateConfig struct {
	Workers int `toml:"workers"`
	Errors  int `toml:"errors"`
}

// findKlaxonToml walks upward from startDir looking for klaxon.toml.
func findKlaxonToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "klaxon.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadFileConfig(startDir string) (fileConfig, error) {
	var cfg fileConfig
	path, ok, err := findKlaxonToml(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}
