// Package testutil provides testing utilities for database integration tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//	defer testutil.TeardownDB(t, db)
//
// Each test gets its own database file under t.TempDir(), so no cleanup
// between tests is needed.
//
// Test Fixtures (for foreign key constraints):
//
//	noteID := testutil.CreateTestNote(t, db)
//
// Migration Path:
//
// Migrations are automatically discovered by walking up from the current
// working directory until a "migrations/sqlite" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupSQLiteDB creates a fresh sqlite database under t.TempDir() and runs
// migrations.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err, "failed to open sqlite database")

	err = db.Ping()
	require.NoError(t, err, "failed to ping sqlite database")

	runSQLiteMigrations(t, db)

	return db
}

// TeardownDB closes the database connection.
func TeardownDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db != nil {
		err := db.Close()
		require.NoError(t, err, "failed to close database connection")
	}
}

// CreateTestNote inserts a minimal note row and returns its ID. Used by tests
// that need a note to satisfy foreign key constraints.
func CreateTestNote(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()

	noteID := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO notes (id, encrypted_data, attachment_count, created_at, updated_at) VALUES (?, ?, 0, ?, ?)",
		noteID.String(), []byte("test-ciphertext"), now, now,
	)
	require.NoError(t, err, "failed to create test note")

	return noteID
}

// runSQLiteMigrations applies all pending migrations for the test database.
func runSQLiteMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	require.NoError(t, err, "failed to create sqlite driver")

	migrationsPath, err := getMigrationsPath("sqlite")
	require.NoError(t, err, "failed to find sqlite migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance for sqlite")

	// Note: We intentionally do NOT close the migrate instance here because we're using
	// WithInstance() with an existing database connection that we don't own. Closing the
	// migrate instance would close the underlying database connection, which is managed
	// by the caller. The file source driver will be garbage collected automatically.

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run sqlite migrations from %s", migrationsPath))
	}
}

// getMigrationsPath resolves the absolute path to migration files for the
// specified database type by walking up from the current working directory.
func getMigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", dbType)
		if info, err := os.Stat(migrationsPath); err == nil && info.IsDir() {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory for %s not found", dbType)
		}
		dir = parent
	}
}
