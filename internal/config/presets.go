package config

import "sort"

var Presets = map[string]map[string]*Config{
	"neutral": {
		"n100": {
			Variant: "neutral", FreqA: 0.5, Size: 100, Iterations: 50000,
		},
		"n500": {
			Variant: "neutral", FreqA: 0.5, Size: 500, Iterations: 50000,
		},
		"n2000": {
			Variant: "neutral", FreqA: 0.5, Size: 2000, Iterations: 50000,
		},
		"n5000": {
			Variant: "neutral", FreqA: 0.5, Size: 5000, Iterations: 50000,
		},
	},
	"lifetime": {
		"default": {
			Variant: "lifetime", FreqA: 0.5, Size: 2000, Iterations: 50000,
			Analysis: AnalysisConfig{Bins: 100, GenerationMinutes: 20},
		},
		"small": {
			Variant: "lifetime", FreqA: 0.5, Size: 200, Iterations: 20000,
			Analysis: AnalysisConfig{Bins: 50, GenerationMinutes: 20},
		},
	},
	"mutation": {
		"n500": {
			Variant: "mutation", FreqA: 0.05, Advantage: 0.1, Size: 500, Iterations: 25000,
		},
		"n2000": {
			Variant: "mutation", FreqA: 0.05, Advantage: 0.1, Size: 2000, Iterations: 70000,
		},
		"n5000": {
			Variant: "mutation", FreqA: 0.05, Advantage: 0.1, Size: 5000, Iterations: 150000,
		},
		"n10000": {
			Variant: "mutation", FreqA: 0.05, Advantage: 0.1, Size: 10000, Iterations: 300000,
		},
		"rare": {
			Variant: "mutation", FreqA: 0.01, Advantage: 10, Size: 1000, Iterations: 100000,
		},
	},
}

// GetPreset returns a copy of the named preset with analysis defaults filled in.
func GetPreset(variant, preset string) *Config {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	cfg, ok := variantPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	if out.Analysis.Bins == 0 {
		out.Analysis.Bins = DefaultBins
	}
	if out.Analysis.GenerationMinutes == 0 {
		out.Analysis.GenerationMinutes = DefaultGenMinutes
	}
	return &out
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
