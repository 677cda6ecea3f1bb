// Package config loads engine preferences and per-primitive default
// dimensions. Preferences are JSON; primitive defaults come from a YAML
// file with one entry per tool.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ConfigPath is the preferences file path, relative to the working directory.
const ConfigPath = "config/cadgen.json"

// Prefs holds engine preferences persisted across runs.
type Prefs struct {
	CylinderSlices    int    `json:"cylinder_slices"`
	AirfoilResolution int    `json:"airfoil_resolution"`
	LogLevel          string `json:"log_level,omitempty"`
}

// Default returns the default preferences.
func Default() Prefs {
	return Prefs{
		CylinderSlices:    32,
		AirfoilResolution: 50,
		LogLevel:          "info",
	}
}

// Load reads preferences from ConfigPath. A missing or invalid file yields
// Default() and does not create a file.
func Load() Prefs {
	return LoadFrom(ConfigPath)
}

// LoadFrom reads preferences from the given path with the same
// missing-means-default semantics as Load.
func LoadFrom(path string) Prefs {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if p.CylinderSlices < 3 {
		p.CylinderSlices = Default().CylinderSlices
	}
	if p.AirfoilResolution < 3 {
		p.AirfoilResolution = Default().AirfoilResolution
	}
	return p
}

// Save writes preferences to ConfigPath, creating the directory if needed.
func Save(p Prefs) error {
	dir := filepath.Dir(ConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}
