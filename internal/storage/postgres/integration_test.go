package postgres

import (
	"database/sql"
	"errors"
	"os"
	"testing"
)

// Set HABIT_TRACKER_TEST_POSTGRES to a connection string to run this test, e.g.
// HABIT_TRACKER_TEST_POSTGRES="postgres://tracker@localhost:5432/habits_test?sslmode=disable"
func TestStoreIntegration(t *testing.T) {
	connStr := os.Getenv("HABIT_TRACKER_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("HABIT_TRACKER_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	const key = "habit-tracker-integration"
	t.Cleanup(func() { _ = store.RemoveItem(key) })

	if err := store.SetItem(key, []byte(`{"state":{"habits":[],"activities":[]},"version":0}`)); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := store.SetItem(key, []byte(`{"state":{"habits":[],"activities":[]},"version":1}`)); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	got, err := store.GetItem(key)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if string(got) != `{"state":{"habits":[],"activities":[]},"version":1}` {
		t.Errorf("GetItem = %s", got)
	}

	if err := store.RemoveItem(key); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, err := store.GetItem(key); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after removal, got %v", err)
	}

	st, err := store.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus failed: %v", err)
	}
	if !st.UpToDate() {
		t.Errorf("expected schema to be up to date, got %+v", st)
	}
}
