package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultsPath is the primitive defaults file, relative to the working
// directory.
const DefaultsPath = "config/primitives.yaml"

// PrimitiveDefault is one YAML entry overriding a tool's default
// dimensions (surfaced in its descriptor and used for optional
// parameters).
type PrimitiveDefault struct {
	Tool       string     `yaml:"tool"`
	Size       [3]float32 `yaml:"size,omitempty"`
	Naca       string     `yaml:"naca,omitempty"`
	Resolution int        `yaml:"resolution,omitempty"`
}

// LoadPrimitiveDefaults reads the defaults file. A missing file is not an
// error; it yields an empty map.
func LoadPrimitiveDefaults(path string) (map[string]PrimitiveDefault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]PrimitiveDefault{}, nil
		}
		return nil, err
	}
	var entries []PrimitiveDefault
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	out := make(map[string]PrimitiveDefault, len(entries))
	for _, e := range entries {
		if e.Tool == "" {
			continue
		}
		out[e.Tool] = e
	}
	return out, nil
}
