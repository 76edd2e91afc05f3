package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	ingestClear bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [folder]",
	Short: "Ingest course documents into the vector index",
	Long: `Parses every supported course document in a folder and adds it to the
local vector index. Courses already present are skipped, so re-running
is safe.

Examples:
  lectern ingest ./docs
  lectern ingest ./docs --clear     # drop the index and rebuild
  lectern ingest ./docs --watch     # keep running, ingest new files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "clear existing data before ingesting")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "watch the folder and ingest new documents")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := appConfig.DocsDir
	if len(args) == 1 {
		dir = args[0]
	}

	stats, err := ingestService.AddCourseFolder(cmd.Context(), dir, ingestClear)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d courses (%d chunks) from %s\n",
		stats.CoursesAdded, stats.ChunksAdded, dir)

	if ingestWatch {
		if folderWatcher == nil {
			return errors.New("watcher not configured")
		}
		cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)
		return folderWatcher.Watch(cmd.Context(), dir)
	}
	return nil
}
