package database

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := NewSQLiteConnection(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return count > 0
}

func TestNewSQLiteConnectionAppliesEmbeddedMigrations(t *testing.T) {
	db := openMemory(t)

	for _, table := range []string{"barters", "offers", "messages", "profiles", "schema_migrations"} {
		if !tableExists(t, db, table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	var applied int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 applied migrations, got %d", applied)
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db := openMemory(t)

	if err := ApplyMigrations(context.Background(), db); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	var applied int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 applied migrations after replay, got %d", applied)
	}
}

func TestApplyMigrationsSkipsDownSection(t *testing.T) {
	db := openMemory(t)

	migrations := fstest.MapFS{
		"extra/001_items.sql": &fstest.MapFile{
			Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;"),
		},
	}
	if err := applyMigrations(context.Background(), db, migrations, "extra"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if !tableExists(t, db, "items") {
		t.Fatal("expected items table to exist")
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dialect Dialect
		in      string
		want    string
	}{
		{Postgres, "SELECT * FROM t WHERE a = $1 AND b = $2", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{SQLite, "SELECT * FROM t WHERE a = $1 AND b = $2", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{SQLite, "UPDATE t SET a = $10 WHERE note = '$'", "UPDATE t SET a = ? WHERE note = '$'"},
	}
	for _, tt := range tests {
		db := &DB{Dialect: tt.dialect}
		if got := db.Rebind(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.dialect, tt.want, got)
		}
	}
}

func TestMillisRoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 30, 0, 123_000_000, time.UTC)
	if got := FromMillis(ToMillis(now)); !got.Equal(now) {
		t.Fatalf("expected %s, got %s", now, got)
	}
}

func TestExtractUpMigration(t *testing.T) {
	got := ExtractUpMigration("-- +migrate Up\nCREATE TABLE a(id INT);\n-- +migrate Down\nDROP TABLE a;")
	if got != "\nCREATE TABLE a(id INT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
	if got := ExtractUpMigration("CREATE TABLE b(id INT);"); got != "CREATE TABLE b(id INT);" {
		t.Fatalf("expected whole content without markers, got %q", got)
	}
}
