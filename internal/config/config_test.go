package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, DefaultMaxResults, cfg.MaxResults)
	assert.Equal(t, DefaultMaxHistory, cfg.MaxHistory)
	assert.Equal(t, DefaultAnthropicModel, cfg.AnthropicModel)
}

func TestLoadOverlaysTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
chunk_size = 400
max_history = 4
embedding_provider = "ollama"
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 400, cfg.ChunkSize)
	assert.Equal(t, 4, cfg.MaxHistory)
	assert.Equal(t, "ollama", cfg.EmbeddingProvider)

	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
}

func TestLoadReadsSecretsFromEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("OPENAI_API_KEY", "sk-oai-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "sk-oai-test", cfg.OpenAIAPIKey)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size = [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
