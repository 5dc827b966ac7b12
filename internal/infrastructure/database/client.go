package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

// Client wraps a SQL database connection with Turso-specific retry logic.
type Client struct {
	*sql.DB
}

// Options configures the database client behavior.
type Options struct {
	Ping bool
}

// New creates a new database client with default options (ping enabled).
func New(databaseURL, authToken string) (*Client, error) {
	return NewWithOptions(databaseURL, authToken, Options{Ping: true})
}

// NewWithOptions creates a database client with custom options.
func NewWithOptions(databaseURL, authToken string, opts Options) (*Client, error) {
	db, err := sql.Open("libsql", ConnString(databaseURL, authToken))
	if err != nil {
		return nil, err
	}

	if IsRemote(databaseURL) {
		// Turso closes idle Hrana streams aggressively; stale pooled
		// connections surface as "stream not found".
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(0)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(0)
	}

	if opts.Ping {
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &Client{DB: db}, nil
}

// IsRemote reports whether the URL points at a Turso server rather than a
// local file.
func IsRemote(databaseURL string) bool {
	for _, scheme := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(databaseURL, scheme) {
			return true
		}
	}
	return false
}

// ConnString appends the auth token for remote URLs.
func ConnString(databaseURL, authToken string) string {
	if !IsRemote(databaseURL) || authToken == "" {
		return databaseURL
	}
	sep := "?"
	if strings.Contains(databaseURL, "?") {
		sep = "&"
	}
	return databaseURL + sep + "authToken=" + authToken
}

// IsStreamError checks if an error is a Turso "stream not found" error.
func IsStreamError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "stream not found")
}

// WithRetry executes fn, retrying up to maxRetries times on stream errors.
func WithRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}

		if !IsStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	return result, err
}
