package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/moran/internal/moran"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Variant != "neutral" {
		t.Errorf("expected variant neutral, got %s", cfg.Variant)
	}
	if cfg.Size <= 0 {
		t.Error("population size should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mutation", "rare")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.FreqA != 0.01 || cfg.Advantage != 10 || cfg.Size != 1000 {
		t.Errorf("unexpected rare preset: %+v", cfg)
	}
	if cfg.Analysis.Bins != DefaultBins {
		t.Errorf("expected default bins, got %d", cfg.Analysis.Bins)
	}

	cfg.Size = 1
	if Presets["mutation"]["rare"].Size != 1000 {
		t.Error("GetPreset returned a shared pointer")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("neutral", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "n100"); cfg != nil {
		t.Error("expected nil for nonexistent variant")
	}
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"n100", "n2000", "n500", "n5000"}, ListPresets("neutral"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestPresetsValid(t *testing.T) {
	for variant, presets := range Presets {
		for name := range presets {
			cfg := GetPreset(variant, name)
			assert.NoError(t, cfg.Validate(), "%s/%s", variant, name)
			assert.Equal(t, variant, cfg.Variant, "%s/%s", variant, name)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "spatial"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.FreqA = 1.2
	assert.True(t, errors.Is(cfg.Validate(), moran.ErrInvalidParameter))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Variant = "mutation"
	cfg.Advantage = 0.25
	cfg.Seed = 42

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: lifetime\npopulation_size: 300\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lifetime", cfg.Variant)
	assert.Equal(t, 300, cfg.Size)
	assert.Equal(t, DefaultIterations, cfg.Iterations)
	assert.Equal(t, DefaultBins, cfg.Analysis.Bins)
}

func ptr[T any](v T) *T { return &v }

func TestResolve_FlagsBeatPreset(t *testing.T) {
	cfg, err := Resolve("neutral", "n100", nil, &Overrides{Size: ptr(50)})
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Size)
	assert.Equal(t, 50000, cfg.Iterations)
	assert.Equal(t, 0.5, cfg.FreqA)
}

func TestResolve_PartialFileKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 1234\nseed: 9\n"), 0644))

	file, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Nil(t, file.Size)
	assert.Nil(t, file.FreqA)

	cfg, err := Resolve("mutation", "rare", file, nil)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Size)
	assert.Equal(t, 0.01, cfg.FreqA)
	assert.Equal(t, 10.0, cfg.Advantage)
	assert.Equal(t, 1234, cfg.Iterations)
	assert.Equal(t, int64(9), cfg.Seed)
}

func TestResolve_Layering(t *testing.T) {
	file := &Overrides{Size: ptr(300), FreqA: ptr(0.2)}
	flags := &Overrides{FreqA: ptr(0.7)}

	cfg, err := Resolve("neutral", "n500", file, flags)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Size)
	assert.Equal(t, 0.7, cfg.FreqA)
	assert.Equal(t, "neutral", cfg.Variant)

	// the preset table itself is untouched
	assert.Equal(t, 500, Presets["neutral"]["n500"].Size)
}

func TestResolve_NoLayers(t *testing.T) {
	cfg, err := Resolve("lifetime", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "lifetime", cfg.Variant)
	assert.Equal(t, DefaultSize, cfg.Size)
}

func TestResolve_UnknownPreset(t *testing.T) {
	_, err := Resolve("neutral", "huge", nil, nil)
	assert.Error(t, err)
}
