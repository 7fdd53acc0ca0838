// Package testutil provides the shared postgres fixture for the
// integration tests under test/.
package testutil

import (
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/mireo/fitvault/internal/config"
	"github.com/mireo/fitvault/internal/db"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenTestDB connects to the postgres instance named by TEST_DB_HOST
// and applies migrations. Tests are skipped when the variable is unset
// so plain `go test ./...` stays green without a database.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	port, err := strconv.Atoi(envOr("TEST_DB_PORT", "5432"))
	if err != nil {
		t.Fatalf("bad TEST_DB_PORT: %v", err)
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TEST_DB_USER", "fitvault"),
		Password: envOr("TEST_DB_PASSWORD", "fitvault_pass"),
		DBName:   envOr("TEST_DB_NAME", "fitvault_test"),
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
