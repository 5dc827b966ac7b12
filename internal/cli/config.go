package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration brandkit resolved from the environment and the
optional .env file. Secrets are masked.

Examples:
  brandkit config
  brandkit config --env-file staging.env`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"BRANDKIT_DATABASE_URL", cfg.Database.URL},
		{"BRANDKIT_AUTH_TOKEN", mask(cfg.Database.AuthToken)},
		{"BRANDKIT_PORT", fmt.Sprint(cfg.Port)},
		{"BRANDKIT_LOG_LEVEL", cfg.LogLevel},
		{"BRANDKIT_DEFAULT_TENANT", cfg.DefaultTenant},
		{"BRANDKIT_PALETTE_BLEND", cfg.PaletteBlend},
		{"BRANDKIT_OTEL_ENABLED", fmt.Sprint(cfg.OTel.Enabled)},
		{"BRANDKIT_OTEL_ENDPOINT", cfg.OTel.Endpoint},
		{"BRANDKIT_OTEL_INSECURE", fmt.Sprint(cfg.OTel.Insecure)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	return w.Flush()
}

// mask keeps the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
