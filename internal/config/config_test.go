package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Git.AutoCommit = true
	cfg.Git.AuthorName = "Test Author"

	path := filepath.Join(t.TempDir(), "tally.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Ledger.DataFile, got.Ledger.DataFile)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, "Test Author", got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
	assert.Equal(t, cfg.Import.DefaultFormat, got.Import.DefaultFormat)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "budget.json", cfg.Ledger.DataFile)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Tally", cfg.Git.AuthorName)
	assert.Equal(t, "chase", cfg.Import.DefaultFormat)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TALLY_DATA_FILE", "other.json")
	t.Setenv("TALLY_GIT_AUTO_COMMIT", "true")

	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.json", got.Ledger.DataFile)
	assert.True(t, got.Git.AutoCommit)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "data_file: budget.json")
	assert.Contains(t, contents, "auto_commit: false")
	assert.Contains(t, contents, "default_format: chase")
}
