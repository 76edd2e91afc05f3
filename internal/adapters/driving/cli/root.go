// Package cli implements the Lectern command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lectern-labs/lectern-cli/internal/config"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driving"
	"github.com/lectern-labs/lectern-cli/internal/core/services"
	"github.com/lectern-labs/lectern-cli/internal/logger"
	"github.com/lectern-labs/lectern-cli/internal/tools"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	assistantService driving.AssistantService
	ingestService    driving.IngestService
	searchEngine     *services.CourseSearchEngine
	folderWatcher    *services.FolderWatcher
	appConfig        *config.Config
)

// toolSearcher and toolOutliner are the MCP server's view of the
// search engine.
var (
	toolSearcher tools.ContentSearcher
	toolOutliner tools.OutlineProvider
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "lectern",
	Short: "Ask questions over your course transcripts",
	Long: `Lectern ingests structured course transcripts into a local vector
index and answers natural-language questions over them, using semantic
retrieval and a tool-calling model.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Dependencies bundles everything the commands need.
type Dependencies struct {
	Assistant driving.AssistantService
	Ingest    driving.IngestService
	Engine    *services.CourseSearchEngine
	Watcher   *services.FolderWatcher
	Config    *config.Config
	Version   string
}

// SetDependencies injects the wired services. Must be called before
// Execute.
func SetDependencies(deps Dependencies) {
	assistantService = deps.Assistant
	ingestService = deps.Ingest
	searchEngine = deps.Engine
	folderWatcher = deps.Watcher
	appConfig = deps.Config
	toolSearcher = deps.Engine
	toolOutliner = deps.Engine
	if deps.Version != "" {
		version = deps.Version
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print retrieval pipeline debug output")
}
