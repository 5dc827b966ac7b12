package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/adapters/otel"
	"github.com/emiliopalmerini/brandkit/internal/adapters/turso"
	"github.com/emiliopalmerini/brandkit/internal/branding"
	"github.com/emiliopalmerini/brandkit/internal/infrastructure/config"
	"github.com/emiliopalmerini/brandkit/internal/infrastructure/database"
	"github.com/emiliopalmerini/brandkit/internal/palette"
	"github.com/emiliopalmerini/brandkit/internal/ports"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *sql.DB
	SettingsRepo ports.SettingsRepository
	Exporter     ports.MetricsExporter
	Branding     *branding.Service
}

// testDBOverride replaces the configured database in command tests.
var testDBOverride *sql.DB

// NewAppContext connects to the database and wires the branding service.
func NewAppContext(ctx context.Context, c *config.Config, log *zap.Logger) (*AppContext, error) {
	if testDBOverride != nil {
		return newAppContext(testDBOverride, c, log, otel.NewNoOpExporter())
	}

	client, err := database.New(c.Database.URL, c.Database.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	exporter, err := otel.New(ctx, otel.ConfigFrom(c.OTel))
	if err != nil {
		log.Warn("OTEL exporter unavailable, continuing without it", zap.Error(err))
		exporter = otel.NewNoOpExporter()
	}

	app, err := newAppContext(client.DB, c, log, exporter)
	if err != nil {
		_ = client.Close()
		_ = exporter.Close(ctx)
		return nil, err
	}
	return app, nil
}

func newAppContext(db *sql.DB, c *config.Config, log *zap.Logger, exporter ports.MetricsExporter) (*AppContext, error) {
	blend, err := palette.ParseBlend(c.PaletteBlend)
	if err != nil {
		return nil, err
	}
	repos := turso.NewRepositories(db)
	return &AppContext{
		Config:       c,
		Logger:       log,
		DB:           db,
		SettingsRepo: repos.Settings,
		Exporter:     exporter,
		Branding:     branding.NewService(repos.Settings, exporter, log, blend),
	}, nil
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close() error {
	var errs []error
	if a.Exporter != nil {
		errs = append(errs, a.Exporter.Close(context.Background()))
	}
	if a.DB != nil && a.DB != testDBOverride {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

// tenantOr returns flag when set, else the configured default tenant.
func tenantOr(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.DefaultTenant
}
