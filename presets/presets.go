// Package presets provides the example structures offered to clients.
package presets

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yml
var defaultPresets []byte

var ErrInvalidPreset = errors.New("preset must have a name and a SMILES")

type Preset struct {
	Name   string `yaml:"name" json:"name"`
	SMILES string `yaml:"smiles" json:"smiles"`
}

type file struct {
	Presets []Preset `yaml:"presets"`
}

// Load returns the built-in presets.
func Load() ([]Preset, error) {
	return Parse(defaultPresets)
}

// Parse decodes a presets document, keeping the document order.
func Parse(data []byte) ([]Preset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not unmarshal presets: %w", err)
	}

	for i, p := range f.Presets {
		if p.Name == "" || p.SMILES == "" {
			return nil, fmt.Errorf("preset %d: %w", i, ErrInvalidPreset)
		}
	}
	return f.Presets, nil
}
