package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/moran/internal/moran"
)

const (
	DefaultVariant    = "neutral"
	DefaultFreqA      = 0.5
	DefaultAdvantage  = 0.1
	DefaultSize       = 2000
	DefaultIterations = 50000
	DefaultBins       = 100
	DefaultGenMinutes = 20.0
)

type Config struct {
	Variant    string         `yaml:"variant"`
	FreqA      float64        `yaml:"freq_a"`
	Advantage  float64        `yaml:"advantage"`
	Size       int            `yaml:"population_size"`
	Iterations int            `yaml:"iterations"`
	Seed       int64          `yaml:"seed"`
	Analysis   AnalysisConfig `yaml:"analysis"`
}

type AnalysisConfig struct {
	Bins              int     `yaml:"bins"`
	GenerationMinutes float64 `yaml:"generation_minutes"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:    DefaultVariant,
		FreqA:      DefaultFreqA,
		Advantage:  DefaultAdvantage,
		Size:       DefaultSize,
		Iterations: DefaultIterations,
		Analysis: AnalysisConfig{
			Bins:              DefaultBins,
			GenerationMinutes: DefaultGenMinutes,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() moran.Params {
	return moran.Params{
		FreqA:      c.FreqA,
		Advantage:  c.Advantage,
		Size:       c.Size,
		Iterations: c.Iterations,
	}
}

func (c *Config) Validate() error {
	switch c.Variant {
	case "neutral", "lifetime", "mutation":
	default:
		return fmt.Errorf("unknown variant: %q", c.Variant)
	}
	return c.Params().Validate()
}
