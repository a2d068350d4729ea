// Package preset captures a replayable generation setup: the sample text,
// the field configuration list, custom instructions, the target count, and
// any cached generator program. Stores are externally owned; the pipeline
// only defines the record and its codec.
package preset

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// Preset is the externally persisted configuration record. Feeding its
// fields back into inference and generation replays a previous session
// unchanged, including the cached program when one was synthesized.
type Preset struct {
	Name          string               `yaml:"name" json:"name"`
	SampleText    string               `yaml:"sample" json:"sample"`
	Fields        []schema.FieldConfig `yaml:"fields" json:"fields"`
	Instructions  string               `yaml:"instructions,omitempty" json:"instructions,omitempty"`
	Count         int                  `yaml:"count" json:"count"`
	ProgramSource string               `yaml:"program,omitempty" json:"program,omitempty"`
}

// Encode serializes a preset to YAML.
func Encode(p Preset) ([]byte, error) {
	out, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("preset: encode %q: %w", p.Name, err)
	}
	return out, nil
}

// Decode parses a YAML preset document.
func Decode(data []byte) (Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("preset: decode: %w", err)
	}
	if p.Name == "" {
		return Preset{}, fmt.Errorf("preset: decode: missing name")
	}
	return p, nil
}
