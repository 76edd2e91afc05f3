// Package config loads Lectern configuration: baked-in defaults,
// overridden by an optional TOML file, with API keys taken from the
// environment so secrets stay out of config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default values.
const (
	DefaultChunkSize    = 800
	DefaultChunkOverlap = 100
	DefaultMaxResults   = 5
	DefaultMaxHistory   = 2
	DefaultMaxTokens    = 800

	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// Config holds the full runtime configuration.
type Config struct {
	// Chunking parameters.
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`

	// Retrieval and generation parameters.
	MaxResults int `toml:"max_results"`
	MaxHistory int `toml:"max_history"`
	MaxTokens  int `toml:"max_tokens"`

	// Model selection.
	AnthropicModel string `toml:"anthropic_model"`
	EmbeddingModel string `toml:"embedding_model"`

	// Embedding provider: "openai" or "ollama".
	EmbeddingProvider string `toml:"embedding_provider"`
	OllamaBaseURL     string `toml:"ollama_base_url"`

	// DataDir holds the vector database. Empty means ~/.lectern/data.
	DataDir string `toml:"data_dir"`

	// DocsDir is the default course document folder for ingestion.
	DocsDir string `toml:"docs_dir"`

	// Secrets, environment-only.
	AnthropicAPIKey string `toml:"-"`
	OpenAIAPIKey    string `toml:"-"`
}

// Default returns the baked-in configuration.
func Default() *Config {
	return &Config{
		ChunkSize:         DefaultChunkSize,
		ChunkOverlap:      DefaultChunkOverlap,
		MaxResults:        DefaultMaxResults,
		MaxHistory:        DefaultMaxHistory,
		MaxTokens:         DefaultMaxTokens,
		AnthropicModel:    DefaultAnthropicModel,
		EmbeddingModel:    DefaultEmbeddingModel,
		EmbeddingProvider: "openai",
		DocsDir:           "docs",
	}
}

// Load builds the configuration: defaults, then the TOML file at
// configPath if present (empty path means ~/.lectern/config.toml),
// then environment secrets.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".lectern", "config.toml")
		}
	}

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read %s: %w", configPath, err)
		}
	}

	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}
