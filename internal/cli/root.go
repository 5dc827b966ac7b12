package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/infrastructure/config"
	"github.com/emiliopalmerini/brandkit/internal/infrastructure/logging"
)

var rootCmd = &cobra.Command{
	Use:   "brandkit",
	Short: "Brand palette generator and tenant branding service",
	Long: `brandkit derives an 11-step shade scale and light/dark theme overrides
from a single brand color, and stores per-tenant branding settings.

Run the web editor with "brandkit serve", or work from the terminal with
"brandkit palette" and "brandkit settings".`,
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

var (
	envFile string
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file with BRANDKIT_* variables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

// loadRuntime reads configuration and builds the logger before any command
// runs.
func loadRuntime(cmd *cobra.Command, args []string) error {
	c, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	l, _, err := logging.New(c.LogLevel, verbose)
	if err != nil {
		return err
	}
	cfg = c
	logger = l
	return nil
}
