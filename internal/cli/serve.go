package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/brandkit/internal/adapters/prometheus"
	"github.com/emiliopalmerini/brandkit/internal/migrate"
	"github.com/emiliopalmerini/brandkit/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the branding web server",
	Long: `Start the branding editor, settings API and live preview server.

Pending migrations are applied before the server starts listening.

Examples:
  brandkit serve              # Start on BRANDKIT_PORT (default 8080)
  brandkit serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides BRANDKIT_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewAppContext(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := migrate.RunAll(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	server := web.NewServer(port, cfg.DefaultTenant, app.Branding, prometheus.NewMetrics(), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", zap.Int("preview_clients", server.Hub().Count()))
		return nil
	})
	return g.Wait()
}
