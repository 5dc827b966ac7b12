package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/infrastructure/database"
	"github.com/emiliopalmerini/brandkit/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  brandkit migrate      # Run all pending migrations
  brandkit migrate 1    # Migrate to version 1
  brandkit migrate 0    # Rollback all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := database.New(cfg.Database.URL, cfg.Database.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer client.Close()

	m, err := migrate.New(client.DB, logger)
	if err != nil {
		return err
	}

	target := m.Latest()
	if len(args) == 1 {
		target, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
	}

	if err := m.EnsureTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, _, err := m.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", current)

	applied, err := m.To(ctx, target)
	if err != nil {
		return err
	}
	logger.Debug("migrations finished", zap.Int("applied", applied))

	if applied == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Already at target version")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version %d (%d step(s))\n", target, applied)
	return nil
}
