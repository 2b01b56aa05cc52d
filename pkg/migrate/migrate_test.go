package migrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

var testMigrations = fstest.MapFS{
	"m/001_create_frames.up.sql":   {Data: []byte("CREATE TABLE frames (day REAL)")},
	"m/001_create_frames.down.sql": {Data: []byte("DROP TABLE frames")},
	"m/002_add_phase.up.sql":       {Data: []byte("ALTER TABLE frames ADD COLUMN phase TEXT")},
	"m/002_add_phase.down.sql":     {Data: []byte("ALTER TABLE frames DROP COLUMN phase")},
	"m/README.md":                  {Data: []byte("ignored")},
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFSProviderGetMigrations(t *testing.T) {
	migrations, err := NewFSProvider(testMigrations, "m", "").GetMigrations()
	if err != nil {
		t.Fatalf("GetMigrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("got %d migrations, expected 2", len(migrations))
	}
	for _, m := range migrations {
		if m.Up == "" || m.Down == "" {
			t.Errorf("migration %d missing up or down SQL", m.Version)
		}
		if m.Version == 2 && m.Name != "add phase" {
			t.Errorf("migration 2 name = %q, expected %q", m.Name, "add phase")
		}
	}
}

func TestMigrator(t *testing.T) {
	db := openDB(t)
	m := NewMigrator(db, NewFSProvider(testMigrations, "m", ""), nil)

	pending, err := m.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending, expected 2", len(pending))
	}

	if err := m.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if v, _ := m.CurrentVersion(); v != 2 {
		t.Errorf("version after MigrateUp = %d, expected 2", v)
	}
	if _, err := db.Exec("INSERT INTO frames (day, phase) VALUES (1.5, 'new')"); err != nil {
		t.Errorf("schema not applied: %v", err)
	}

	// Running again is a no-op.
	if err := m.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}

	if err := m.MigrateTo(1); err != nil {
		t.Fatalf("MigrateTo(1): %v", err)
	}
	if v, _ := m.CurrentVersion(); v != 1 {
		t.Errorf("version after MigrateTo(1) = %d, expected 1", v)
	}
	if _, err := db.Exec("INSERT INTO frames (day, phase) VALUES (1.5, 'new')"); err == nil {
		t.Error("phase column survived rollback")
	}

	if err := m.MigrateTo(0); err != nil {
		t.Fatalf("MigrateTo(0): %v", err)
	}
	if _, err := db.Exec("SELECT * FROM frames"); err == nil {
		t.Error("frames table survived rollback to 0")
	}
}

func TestMigratorMissingDown(t *testing.T) {
	fsys := fstest.MapFS{
		"m/001_only_up.up.sql": {Data: []byte("CREATE TABLE t (x INTEGER)")},
	}
	m := NewMigrator(openDB(t), NewFSProvider(fsys, "m", "versions"), nil)
	if err := m.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if err := m.MigrateTo(0); err == nil {
		t.Error("expected error rolling back a migration with no down SQL")
	}
}
