// Command lectern is a course-transcript question answering CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/embedding/ollama"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/embedding/openai"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/llm/anthropic"
	sessionmem "github.com/lectern-labs/lectern-cli/internal/adapters/driven/storage/memory"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/lectern-labs/lectern-cli/internal/adapters/driving/cli"
	"github.com/lectern-labs/lectern-cli/internal/chunker"
	"github.com/lectern-labs/lectern-cli/internal/config"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
	"github.com/lectern-labs/lectern-cli/internal/core/services"
	"github.com/lectern-labs/lectern-cli/internal/parsers"
	"github.com/lectern-labs/lectern-cli/internal/parsers/coursemd"
	"github.com/lectern-labs/lectern-cli/internal/parsers/coursetxt"
	"github.com/lectern-labs/lectern-cli/internal/tools"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	loadEnvFiles()

	cfg, err := config.Load(os.Getenv("LECTERN_CONFIG"))
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening vector store: %w", err)
	}
	defer store.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	engine := services.NewCourseSearchEngine(store, embedder, cfg.MaxResults)

	registry := tools.NewRegistry()
	if err := registry.Register(tools.NewCourseSearchTool(engine)); err != nil {
		return err
	}
	if err := registry.Register(tools.NewCourseOutlineTool(engine)); err != nil {
		return err
	}

	docChunker := chunker.New(
		chunker.WithChunkSize(cfg.ChunkSize),
		chunker.WithOverlap(cfg.ChunkOverlap),
	)
	parserRegistry := parsers.NewRegistry(
		coursetxt.New(docChunker),
		coursemd.New(docChunker),
	)

	sessions := sessionmem.NewSessionStore(cfg.MaxHistory)

	// The assistant is only wired when an Anthropic key is present;
	// ingestion and corpus inspection work without one.
	var generator *services.ResponseGenerator
	if cfg.AnthropicAPIKey != "" {
		client, err := anthropic.NewClient(anthropic.Config{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.AnthropicModel,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		generator = services.NewResponseGenerator(client, registry, cfg.MaxTokens)
	}

	rag := services.NewRAGService(parserRegistry, store, embedder, generator, sessions)
	watcher := services.NewFolderWatcher(rag, parserRegistry)

	deps := cli.Dependencies{
		Ingest:  rag,
		Engine:  engine,
		Watcher: watcher,
		Config:  cfg,
		Version: version,
	}
	if generator != nil {
		deps.Assistant = rag
	}
	cli.SetDependencies(deps)

	return cli.Execute()
}

// loadEnvFiles loads .env from the working directory and ~/.lectern,
// without overriding variables already set in the shell.
func loadEnvFiles() {
	godotenv.Load() //nolint:errcheck
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".lectern", ".env")) //nolint:errcheck
	}
}

// buildEmbedder selects the configured embedding provider.
func buildEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.EmbeddingProvider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.EmbeddingModel,
		}), nil
	case "openai", "":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider (or set embedding_provider = \"ollama\")")
		}
		return openai.NewEmbeddingService(openai.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.EmbeddingModel,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}
