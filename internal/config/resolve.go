package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides carries only the fields that were actually given, either in a
// config file or on the command line. Nil fields leave the target unchanged.
type Overrides struct {
	Variant    *string           `yaml:"variant"`
	FreqA      *float64          `yaml:"freq_a"`
	Advantage  *float64          `yaml:"advantage"`
	Size       *int              `yaml:"population_size"`
	Iterations *int              `yaml:"iterations"`
	Seed       *int64            `yaml:"seed"`
	Analysis   AnalysisOverrides `yaml:"analysis"`
}

type AnalysisOverrides struct {
	Bins              *int     `yaml:"bins"`
	GenerationMinutes *float64 `yaml:"generation_minutes"`
}

// LoadOverrides reads a config file without filling in defaults, so fields
// the file leaves out can be told apart from fields set to their zero value.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &o, nil
}

// Apply copies every set field onto cfg. Variant is left to the caller.
func (o *Overrides) Apply(cfg *Config) {
	if o == nil {
		return
	}
	if o.FreqA != nil {
		cfg.FreqA = *o.FreqA
	}
	if o.Advantage != nil {
		cfg.Advantage = *o.Advantage
	}
	if o.Size != nil {
		cfg.Size = *o.Size
	}
	if o.Iterations != nil {
		cfg.Iterations = *o.Iterations
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Analysis.Bins != nil {
		cfg.Analysis.Bins = *o.Analysis.Bins
	}
	if o.Analysis.GenerationMinutes != nil {
		cfg.Analysis.GenerationMinutes = *o.Analysis.GenerationMinutes
	}
}

// Resolve layers defaults, the named preset, the config file and then the
// explicitly set flags, later layers winning. Empty preset or file skips
// that layer.
func Resolve(variant, preset string, file *Overrides, flags *Overrides) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Variant = variant

	if preset != "" {
		p := GetPreset(variant, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets(variant))
		}
		cfg = p
	}

	file.Apply(cfg)
	flags.Apply(cfg)
	return cfg, nil
}
