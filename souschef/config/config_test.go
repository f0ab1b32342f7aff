package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "data/souschef.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:11434", cfg.Generation.BaseURL)
	assert.Equal(t, "mistral:7b-instruct-q4_0", cfg.Generation.Model)
	assert.InDelta(t, 0.3, cfg.Generation.Temperature, 1e-6)
	assert.InDelta(t, 0.8, cfg.Generation.TopP, 1e-6)
	assert.Equal(t, 300, cfg.Generation.NumPredict)
	assert.Equal(t, 2048, cfg.Generation.NumCtx)
	assert.InDelta(t, 1.1, cfg.Generation.RepeatPenalty, 1e-6)
	assert.Equal(t, []string{"\n\n\n", "User:", "Human:"}, cfg.Generation.Stop)
	assert.Equal(t, 60*time.Second, cfg.Generation.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Generation.HealthTimeout)
	assert.True(t, cfg.Generation.WarmUpOnStart)
	assert.Equal(t, 5, cfg.Assistant.HistoryWindow)
	assert.Equal(t, 2, cfg.Assistant.EnhancerWindow)
	assert.Equal(t, 80, cfg.Assistant.DescriptionLimit)
	assert.Equal(t, 120, cfg.Assistant.IngredientLimit)
	assert.Equal(t, 2, cfg.Retrieval.Limit)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	viper.Reset()

	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("server:\n  port: 9090\ngeneration:\n  model: llama3\n  request_timeout: 30s\nretrieval:\n  limit: 4\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "llama3", cfg.Generation.Model)
	assert.Equal(t, 30*time.Second, cfg.Generation.RequestTimeout)
	assert.Equal(t, 4, cfg.Retrieval.Limit)

	// Untouched sections keep their defaults.
	assert.Equal(t, 5, cfg.Assistant.HistoryWindow)
	assert.Equal(t, "data/souschef.db", cfg.Database.Path)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	viper.Reset()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
