package migration

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habit-tracker/migrations"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func setupTestMigrations(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"README.md":       "not a migration",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	want := []string{"init", "update", "another"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != want[i] {
			t.Errorf("migration %d: expected version %d name %q, got version %d name %q", i, i+1, want[i], m.Version, m.Name)
		}
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	tests := map[string]fstest.MapFS{
		"no separator":  setupTestMigrations(map[string]string{"001.sql": "SELECT 1;"}),
		"not a number":  setupTestMigrations(map[string]string{"abc_init.sql": "SELECT 1;"}),
		"zero version":  setupTestMigrations(map[string]string{"000_init.sql": "SELECT 1;"}),
		"duplicate ver": setupTestMigrations(map[string]string{"001_a.sql": "SELECT 1;", "01_b.sql": "SELECT 1;"}),
	}

	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(db, fsys).ReadMigrationFiles(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql":  "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"002_posts.sql": "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);",
	}))

	var logs []string
	applied, err := runner.ApplyMigrations(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages to be logged")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Second run is a no-op
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on second run, got %d", applied)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE broken (;",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected error to name the failing migration, got %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version to stay at 1, got %d", version)
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}))

	if err := runner.SetVersion(9); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for database newer than application")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Error("expected ApplyMigrations to refuse a newer database")
	}
}

func TestStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, setupTestMigrations(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
		"002_more.sql": "CREATE TABLE b (id INTEGER);",
	}))

	if err := runner.SetVersion(1); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 {
		t.Errorf("expected current 1 latest 2, got %d/%d", st.Current, st.Latest)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.Pending[0].Name != "more" {
		t.Errorf("expected one pending migration 'more', got %+v", st.Pending)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	if _, err := NewRunner(db, sub).ApplyMigrations(nil); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv_store").Scan(&count); err != nil {
		t.Fatalf("kv_store table missing: %v", err)
	}
}
