package turso_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/brandkit/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each test gets its own named in-memory database.
	db, err := sql.Open("libsql", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	ctx := context.Background()
	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
