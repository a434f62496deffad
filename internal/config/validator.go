package config

import (
	"errors"
	"fmt"

	ferrors "github.com/fseq/fseq/internal/errors"
)

// Validator validates configuration and sets smart defaults.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies defaults for
// any field still at its zero value. Returns an error if validation fails.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return ferrors.NewConfigError("project", "", err)
	}

	if err := v.validateCollateConfig(&cfg.Collate); err != nil {
		return ferrors.NewConfigError("collate", cfg.Collate.SplitStrategy, err)
	}

	if err := v.validateEnumerateConfig(&cfg.Enumerate); err != nil {
		return ferrors.NewConfigError("enumerate", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateCollateConfig(collate *Collate) error {
	if collate.SplitStrategy == "" {
		return nil // default applied later
	}
	if _, ok := strategyNames[collate.SplitStrategy]; !ok {
		return fmt.Errorf("unknown split strategy %q (want %s, %s, %s, or %s)",
			collate.SplitStrategy, StrategyVariance, StrategyNone, StrategyFirst, StrategyLast)
	}
	return nil
}

func (v *Validator) validateEnumerateConfig(enum *Enumerate) error {
	if enum.WatchDebounceMs < 0 {
		return fmt.Errorf("WatchDebounceMs cannot be negative, got %d", enum.WatchDebounceMs)
	}
	return nil
}

func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Collate.SplitStrategy == "" {
		cfg.Collate.SplitStrategy = StrategyVariance
	}

	if cfg.Enumerate.WatchDebounceMs == 0 {
		cfg.Enumerate.WatchDebounceMs = 300
	}

	if cfg.Project.Name == "" {
		cfg.Project.Name = cfg.Project.Root
	}
}

// ValidateConfig is a convenience function for quick validation.
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}
