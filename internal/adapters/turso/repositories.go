package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/brandkit/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Settings ports.SettingsRepository
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Settings: NewSettingsRepository(db),
	}
}
