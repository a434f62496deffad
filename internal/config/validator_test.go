package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndSetDefaults(t *testing.T) {
	cfg := &Config{
		Project: Project{Root: "/test/root"},
	}

	require.NoError(t, NewValidator().ValidateAndSetDefaults(cfg))

	assert.Equal(t, StrategyVariance, cfg.Collate.SplitStrategy)
	assert.Equal(t, 300, cfg.Enumerate.WatchDebounceMs)
	assert.Equal(t, "/test/root", cfg.Project.Name, "name defaults to root")
}

func TestValidate_EmptyRoot(t *testing.T) {
	cfg := &Config{}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg := &Config{
		Project: Project{Root: "/test/root"},
		Collate: Collate{SplitStrategy: "weird"},
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weird")
}

func TestValidate_KnownStrategies(t *testing.T) {
	for _, s := range []string{StrategyVariance, StrategyNone, StrategyFirst, StrategyLast} {
		cfg := &Config{
			Project: Project{Root: "/test/root"},
			Collate: Collate{SplitStrategy: s},
		}
		assert.NoError(t, ValidateConfig(cfg), "strategy %q", s)
	}
}

func TestValidate_NegativeDebounce(t *testing.T) {
	cfg := &Config{
		Project:   Project{Root: "/test/root"},
		Enumerate: Enumerate{WatchDebounceMs: -5},
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
}

func TestValidate_ExplicitNameKept(t *testing.T) {
	cfg := &Config{
		Project: Project{Root: "/test/root", Name: "renders"},
	}
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "renders", cfg.Project.Name)
}
