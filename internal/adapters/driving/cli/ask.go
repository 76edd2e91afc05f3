package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question over the ingested courses",
	Long: `Answers a single question using semantic retrieval over the ingested
course corpus. Pass --session to continue a previous conversation.

Examples:
  lectern ask "What does lesson 2 of the MCP course cover?"
  lectern ask --session 2f1f… "And what comes after that?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "session id to continue")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	result, err := assistantService.Answer(cmd.Context(), args[0], askSessionID)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(result.Answer)

	if len(result.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, source := range result.Sources {
			if source.Link != "" {
				cmd.Printf("  %s (%s)\n", source.Text, source.Link)
			} else {
				cmd.Printf("  %s\n", source.Text)
			}
		}
	}

	cmd.Println()
	cmd.Printf("Session: %s\n", result.SessionID)
	return nil
}
