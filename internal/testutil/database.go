// Package testutil provides helpers for integration tests that run
// against a live PostgreSQL instance. Tests using it skip unless
// TEST_DATABASE_URL is set.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/promptops-dev/promptops/migrations"
)

// TestDB holds the database handles for one integration test.
type TestDB struct {
	DB *bun.DB
	t  *testing.T
}

// NewTestDB connects to the database named by TEST_DATABASE_URL, applies
// migrations, and truncates all tables so the test starts clean. It skips
// the calling test when the variable is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("set goose dialect: %v", err)
	}
	if err := goose.Up(db.DB, "."); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	tdb := &TestDB{DB: db, t: t}
	tdb.Truncate()

	t.Cleanup(func() {
		_ = db.Close()
	})
	return tdb
}

// Truncate empties all application tables
func (d *TestDB) Truncate() {
	d.t.Helper()
	_, err := d.DB.ExecContext(context.Background(),
		"TRUNCATE deployments, commit_events, versions RESTART IDENTITY CASCADE")
	if err != nil {
		d.t.Fatalf("truncate tables: %v", err)
	}
}
