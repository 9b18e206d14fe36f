package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Jevon1999/api-presensi/internal/pkg/database"
)

// TestDatabaseSetup wraps a connection to TEST_DATABASE_URL with the schema applied.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres integration test")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolConfig{MaxConns: 10, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)

	if err := setup.ApplySchema(ctx); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return setup
}

// ApplySchema runs migrations/0001_init.sql, which is idempotent.
func (t *TestDatabaseSetup) ApplySchema(ctx context.Context) error {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_init.sql")

	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	_, err = t.DB.Exec(ctx, string(schema))
	return err
}

// TruncateAllTables removes all rows
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendance_reset_logs",
		"attendances",
		"progresses",
		"members",
		"office_locations",
		"offices",
		"users",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// SeedOffice inserts an office with one geofence and one active member and
// returns the office and member ids.
func (t *TestDatabaseSetup) SeedOffice(ctx context.Context, code, phone string, lat, lon string, radius int) (string, string, error) {
	var officeID, memberID string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO offices (code, name) VALUES ($1, $2) RETURNING id
	`, code, "Kantor "+code).Scan(&officeID)
	if err != nil {
		return "", "", err
	}

	_, err = t.DB.Exec(ctx, `
		INSERT INTO office_locations (office_id, name, latitude, longitude, radius_meters)
		VALUES ($1, 'Gedung Utama', $2::numeric, $3::numeric, $4)
	`, officeID, lat, lon, radius)
	if err != nil {
		return "", "", err
	}

	err = t.DB.QueryRow(ctx, `
		INSERT INTO members (phone, name, office_id) VALUES ($1, 'Budi Santoso', $2) RETURNING id
	`, phone, officeID).Scan(&memberID)
	return officeID, memberID, err
}

// Close closes the pool
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
