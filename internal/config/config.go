// Package config loads and validates fseq's layered KDL configuration: a
// global ~/.fseqrc.kdl base overridden by a project-local .fseq.kdl.
package config

import (
	"os"

	"github.com/fseq/fseq/internal/sequence"
)

// Config is the fully resolved configuration consumed by the CLI, the
// enumerator, and the MCP server.
type Config struct {
	Version   int
	Project   Project
	Collate   Collate
	Enumerate Enumerate
	Include   []string
	Exclude   []string
}

// Project identifies the directory being collated.
type Project struct {
	Root string
	Name string
}

// Collate maps one-to-one onto sequence.Config; the string SplitStrategy is
// resolved to the enum by ToSequenceConfig.
type Collate struct {
	SplitStrategy string
	MergePadding  bool
	Pack          bool
	BakeSingleton bool
	Sort          bool
}

// Enumerate controls the directory enumerator and its optional watch mode.
type Enumerate struct {
	RespectGitignore bool
	FollowSymlinks   bool
	WatchDebounceMs  int
}

// SplitStrategy names accepted in config files and on the command line.
const (
	StrategyVariance = "variance"
	StrategyNone     = "none"
	StrategyFirst    = "first"
	StrategyLast     = "last"
)

var strategyNames = map[string]sequence.SplitStrategy{
	StrategyVariance: sequence.RetainHighestVariance,
	StrategyNone:     sequence.RetainNone,
	StrategyFirst:    sequence.RetainFirst,
	StrategyLast:     sequence.RetainLast,
}

// ToSequenceConfig resolves the collate section into the engine's own
// Config. Unknown strategy names fall back to the variance default. The CLI
// runs the validator first, which rejects them; a split_strategy passed to
// the MCP collate_directory tool is not validated and falls back here.
func (c *Config) ToSequenceConfig() sequence.Config {
	strategy, ok := strategyNames[c.Collate.SplitStrategy]
	if !ok {
		strategy = sequence.RetainHighestVariance
	}
	return sequence.Config{
		SplitStrategy: strategy,
		MergePadding:  c.Collate.MergePadding,
		Pack:          c.Collate.Pack,
		BakeSingleton: c.Collate.BakeSingleton,
		Sort:          c.Collate.Sort,
	}
}

// Load resolves configuration for the given project directory: global base
// first, then the project file layered on top.
func Load(rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := loadKDLFile(homeDir, globalConfigName, searchDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	projectConfig, err := loadKDLFile(searchDir, projectConfigName, searchDir)
	if err != nil {
		return nil, err
	}

	switch {
	case baseConfig != nil && projectConfig != nil:
		return mergeConfigs(baseConfig, projectConfig), nil
	case projectConfig != nil:
		return projectConfig, nil
	case baseConfig != nil:
		baseConfig.Project.Root = searchDir
		return baseConfig, nil
	}

	cfg := defaultConfig()
	cfg.Project.Root = searchDir
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Version: 1,
		Collate: Collate{SplitStrategy: StrategyVariance},
		Enumerate: Enumerate{
			RespectGitignore: true,
			WatchDebounceMs:  300,
		},
	}
}

// mergeConfigs layers project over base. Exclusions accumulate across both
// layers so a global "never look at these" list survives a project file;
// everything else is taken from the project layer wholesale, with include
// patterns falling back to the base only when the project names none.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		excludeMap := make(map[string]bool, len(base.Exclude)+len(project.Exclude))
		merged.Exclude = make([]string, 0, len(base.Exclude)+len(project.Exclude))
		for _, pattern := range base.Exclude {
			if !excludeMap[pattern] {
				excludeMap[pattern] = true
				merged.Exclude = append(merged.Exclude, pattern)
			}
		}
		for _, pattern := range project.Exclude {
			if !excludeMap[pattern] {
				excludeMap[pattern] = true
				merged.Exclude = append(merged.Exclude, pattern)
			}
		}
	}

	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}

	return &merged
}
