package db_test

import (
	"context"
	"testing"
	"testing/fstest"

	dbfs "github.com/garnizeh/learnprofile/db"
	"github.com/garnizeh/learnprofile/internal/db"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}

	var count int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("scan schema_migrations count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 migration recorded, got %d", count)
	}

	for _, table := range []string{"users", "learning_style_results", "personality_results", "learning_styles", "learning_tests", "recommendations"} {
		var name string
		if err := d.QueryRow(ctx, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name); err != nil {
			t.Fatalf("expected %s table to exist: %v", table, err)
		}
	}
}

func TestMigrate_OrderAndBadSQL(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	fsys := fstest.MapFS{
		"migrations/0002_second.sql": {Data: []byte(`ALTER TABLE a ADD COLUMN b TEXT;`)},
		"migrations/0001_first.sql":  {Data: []byte(`CREATE TABLE a (id INTEGER PRIMARY KEY);`)},
		"migrations/README.md":       {Data: []byte(`ignored`)},
	}
	if err := db.Migrate(ctx, d, fsys); err != nil {
		t.Fatalf("ordered migrate failed: %v", err)
	}

	broken := fstest.MapFS{
		"migrations/0003_broken.sql": {Data: []byte(`CREATE TABLE ((;`)},
	}
	if err := db.Migrate(ctx, d, broken); err == nil {
		t.Fatalf("expected error for malformed SQL")
	}

	var versions int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations`).Scan(&versions); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if versions != 2 {
		t.Fatalf("failed migration must not be recorded, got %d versions", versions)
	}
}

func TestMigrate_FailedFileRollsBack(t *testing.T) {
	ctx := context.Background()
	d := openTemp(t)

	// the second statement fails, so the first must not survive
	fsys := fstest.MapFS{
		"migrations/0001_partial.sql": {Data: []byte(`CREATE TABLE kept (id INTEGER); INSERT INTO missing VALUES (1);`)},
	}
	if err := db.Migrate(ctx, d, fsys); err == nil {
		t.Fatalf("expected error")
	}

	var n int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='kept'`).Scan(&n); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected table from failed migration to be rolled back")
	}
}

func TestMigrate_MissingDir(t *testing.T) {
	d := openTemp(t)
	if err := db.Migrate(context.Background(), d, fstest.MapFS{}); err == nil {
		t.Fatalf("expected error when migrations dir is missing")
	}
}
