package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err, "a missing config file is not an error")

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "ideacrafter.db", cfg.Database.Path)
	assert.Equal(t, "handoff.bolt", cfg.Handoff.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.NATS.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IDEACRAFTER_LLM_API_KEY", "sk-test")
	t.Setenv("IDEACRAFTER_LLM_BASE_URL", "https://api.example.com/v1")
	t.Setenv("IDEACRAFTER_GOOGLE_API_KEY", "g-key")
	t.Setenv("IDEACRAFTER_GOOGLE_CSE_ID", "g-cse")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "https://api.example.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "g-key", cfg.Search.GoogleAPIKey)
	assert.Equal(t, "g-cse", cfg.Search.GoogleCSEID)
}
