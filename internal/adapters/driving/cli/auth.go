package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// envKeys maps provider names to the environment variable holding
// their API key.
var envKeys = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API keys",
	Long: `Store and inspect the API keys Lectern needs.

Keys are kept in ~/.lectern/.env and loaded on startup. Environment
variables set in the shell take precedence.

Examples:
  lectern auth set-key anthropic
  lectern auth status`,
}

var authSetKeyCmd = &cobra.Command{
	Use:   "set-key [anthropic|openai]",
	Short: "Store an API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSetKey,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API keys are configured",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

// envFilePath returns ~/.lectern/.env, creating the directory.
func envFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, ".lectern")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return filepath.Join(dir, ".env"), nil
}

func runAuthSetKey(cmd *cobra.Command, args []string) error {
	provider := strings.ToLower(args[0])
	envKey, ok := envKeys[provider]
	if !ok {
		return fmt.Errorf("unknown provider %q (want anthropic or openai)", provider)
	}

	cmd.Printf("Enter %s API key: ", provider)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return fmt.Errorf("empty key, nothing stored")
	}

	path, err := envFilePath()
	if err != nil {
		return err
	}

	// Merge with any keys already stored.
	env, err := godotenv.Read(path)
	if err != nil {
		env = map[string]string{}
	}
	env[envKey] = key

	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("restricting %s: %w", path, err)
	}

	cmd.Printf("Stored %s in %s\n", envKey, path)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	for _, provider := range []string{"anthropic", "openai"} {
		envKey := envKeys[provider]
		if os.Getenv(envKey) != "" {
			cmd.Printf("  %-10s configured (%s)\n", provider, envKey)
		} else {
			cmd.Printf("  %-10s not set (%s)\n", provider, envKey)
		}
	}
	return nil
}
