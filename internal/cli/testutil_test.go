package cli

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	_ "github.com/tursodatabase/go-libsql"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/brandkit/internal/infrastructure/config"
	"github.com/emiliopalmerini/brandkit/internal/migrate"
)

// testDB creates a private in-memory database with all migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrate.RunAll(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// useTestRuntime installs a default configuration and an in-memory database
// for the duration of the test.
func useTestRuntime(t *testing.T) *sql.DB {
	t.Helper()

	db := testDB(t)
	prevCfg, prevLogger := cfg, logger
	cfg = &config.Config{
		Database:      config.Database{URL: "file::memory:"},
		Port:          8080,
		LogLevel:      "info",
		DefaultTenant: "default",
		PaletteBlend:  "hsl",
	}
	logger = zap.NewNop()
	testDBOverride = db

	t.Cleanup(func() {
		cfg, logger = prevCfg, prevLogger
		testDBOverride = nil
	})
	return db
}

// runCmd invokes a command's RunE with captured output.
func runCmd(t *testing.T, run func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())

	err := run(cmd, args)
	return out.String(), err
}

// setFlag assigns a package-level flag variable and restores it afterwards.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	prev := *p
	*p = v
	t.Cleanup(func() { *p = prev })
}
