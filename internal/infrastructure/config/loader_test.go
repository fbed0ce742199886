package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, ensureJournalPath(cfg))
	assert.NoError(t, validateConfig(cfg))
	assert.NotEmpty(t, cfg.Journal.Path)
}

func TestValidateConfigRejectsBadSizeClass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.WindowSizeClass = "gigantic"
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigRejectsNegativeDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.AnimationDurationMS = -1
	assert.Error(t, validateConfig(cfg))
}

func TestValidateConfigAcceptsExpanded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.WindowSizeClass = "Expanded"
	assert.NoError(t, validateConfig(cfg))
}

func TestEnsureJournalPathKeepsExplicitPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Journal.Path = "/tmp/custom.db"
	require.NoError(t, ensureJournalPath(cfg))
	assert.Equal(t, "/tmp/custom.db", cfg.Journal.Path)
}
