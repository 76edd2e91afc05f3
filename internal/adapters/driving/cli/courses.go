package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List ingested courses",
	RunE:  runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	analytics, err := ingestService.Analytics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	if analytics.TotalCourses == 0 {
		cmd.Println("No courses ingested yet. Run 'lectern ingest <folder>' first.")
		return nil
	}

	cmd.Printf("Courses (%d total):\n\n", analytics.TotalCourses)
	for _, title := range analytics.CourseTitles {
		cmd.Printf("  %s\n", title)
	}
	return nil
}
