package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-genomics/sampleatlas/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	t.Run("first run creates default config.yaml", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "config")

		cfg, err := loadConfig(dir)
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(dir, "config.yaml"))
		assert.Equal(t, types.DefaultFetchWorkers, cfg.FetchWorkers)
		assert.Equal(t, types.DefaultENABaseURL, cfg.ENABaseURL)
		assert.Equal(t, types.DefaultMaxResults, cfg.MaxResults)
		assert.Empty(t, cfg.CellLineRef)
	})

	t.Run("existing config.yaml is read, not overwritten", func(t *testing.T) {
		dir := t.TempDir()
		content := "cell_line_ref: /data/cellosaurus.db\nfetch_workers: 8\nmax_results: 50\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

		cfg, err := loadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "/data/cellosaurus.db", cfg.CellLineRef)
		assert.Equal(t, 8, cfg.FetchWorkers)
		assert.Equal(t, 50, cfg.MaxResults)
		// Unset keys fall back to defaults.
		assert.Equal(t, types.DefaultENABaseURL, cfg.ENABaseURL)

		data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
			[]byte("fetch_workers: -1\n"), 0o644))

		_, err := loadConfig(dir)
		assert.ErrorIs(t, err, types.ErrWorkersInvalid)
	})
}

func TestTermDirName(t *testing.T) {
	assert.Equal(t, "esophageal_adenocarcinoma", termDirName(" Esophageal Adenocarcinoma "))
	assert.Equal(t, "barrett_s_esophagus", termDirName("barrett/s esophagus"))
}
