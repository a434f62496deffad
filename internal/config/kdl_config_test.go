package config

import (
	"testing"

	"github.com/fseq/fseq/internal/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, StrategyVariance, cfg.Collate.SplitStrategy)
	assert.False(t, cfg.Collate.Pack)
	assert.True(t, cfg.Enumerate.RespectGitignore)
	assert.Equal(t, 300, cfg.Enumerate.WatchDebounceMs)
	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Exclude)
}

func TestParseKDL_FullDocument(t *testing.T) {
	content := `
version 2
project {
    root "/renders/shot_010"
    name "shot_010"
}
collate {
    split_strategy "first"
    merge_padding true
    pack true
    bake_singleton true
    sort true
}
enumerate {
    respect_gitignore false
    follow_symlinks true
    watch_debounce_ms 150
}
include "*.png" "*.exr"
exclude "*.tmp"
`
	cfg, err := parseKDL(content)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Version)
	assert.Equal(t, "/renders/shot_010", cfg.Project.Root)
	assert.Equal(t, "shot_010", cfg.Project.Name)
	assert.Equal(t, StrategyFirst, cfg.Collate.SplitStrategy)
	assert.True(t, cfg.Collate.MergePadding)
	assert.True(t, cfg.Collate.Pack)
	assert.True(t, cfg.Collate.BakeSingleton)
	assert.True(t, cfg.Collate.Sort)
	assert.False(t, cfg.Enumerate.RespectGitignore)
	assert.True(t, cfg.Enumerate.FollowSymlinks)
	assert.Equal(t, 150, cfg.Enumerate.WatchDebounceMs)
	assert.Equal(t, []string{"*.png", "*.exr"}, cfg.Include)
	assert.Equal(t, []string{"*.tmp"}, cfg.Exclude)
}

func TestParseKDL_ExcludeBlockFormat(t *testing.T) {
	content := `
exclude {
    "*.tmp"
    "*.bak"
}
`
	cfg, err := parseKDL(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmp", "*.bak"}, cfg.Exclude)
}

func TestParseKDL_UnknownNodesIgnored(t *testing.T) {
	content := `
collate {
    pack true
    some_future_option 42
}
shiny_new_section {
    whatever true
}
`
	cfg, err := parseKDL(content)
	require.NoError(t, err)
	assert.True(t, cfg.Collate.Pack)
}

func TestParseKDL_Malformed(t *testing.T) {
	_, err := parseKDL(`collate { pack true`)
	assert.Error(t, err)
}

func TestToSequenceConfig(t *testing.T) {
	tests := []struct {
		strategy string
		want     sequence.SplitStrategy
	}{
		{StrategyVariance, sequence.RetainHighestVariance},
		{StrategyNone, sequence.RetainNone},
		{StrategyFirst, sequence.RetainFirst},
		{StrategyLast, sequence.RetainLast},
		{"bogus", sequence.RetainHighestVariance},
	}
	for _, tt := range tests {
		cfg := &Config{Collate: Collate{SplitStrategy: tt.strategy, Pack: true, Sort: true}}
		got := cfg.ToSequenceConfig()
		assert.Equal(t, tt.want, got.SplitStrategy, "strategy %q", tt.strategy)
		assert.True(t, got.Pack)
		assert.True(t, got.Sort)
		assert.False(t, got.MergePadding)
	}
}
