package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

func TestInitPersistsSeed(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx, out := unopenedContext(t, mem)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Initialized habit-tracker storage at: memory") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if _, err := mem.GetItem(constants.StorageKey); err != nil {
		t.Fatalf("seed not persisted: %v", err)
	}
	if n := len(ctx.Store.Habits()); n != 3 {
		t.Errorf("expected 3 seed habits, got %d", n)
	}

	// a second init leaves data alone
	if err := ctx.Store.ToggleHabit("1"); err != nil {
		t.Fatal(err)
	}
	again, out := unopenedContext(t, mem)
	if err := (&InitCmd{}).Run(again); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "already initialized") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if h, _ := again.Store.Habit("1"); !h.CompletedToday {
		t.Error("re-running init must not reset data")
	}
}

func TestInitEmpty(t *testing.T) {
	ctx, _ := unopenedContext(t, storage.NewMemoryStore())

	if err := (&InitCmd{Empty: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(ctx.Store.Habits()) != 0 || len(ctx.Store.Activities()) != 0 {
		t.Error("expected empty collections")
	}
}

func TestInitForceResets(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx, _ := unopenedContext(t, mem)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.DeleteHabit("2"); err != nil {
		t.Fatal(err)
	}

	declined, _ := unopenedContext(t, mem)
	declined.In = strings.NewReader("n\n")
	if err := (&InitCmd{Force: true}).Run(declined); err == nil {
		t.Fatal("expected cancellation error")
	}

	forced, out := unopenedContext(t, mem)
	if err := (&InitCmd{Force: true, Yes: true}).Run(forced); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if _, ok := forced.Store.Habit("2"); !ok {
		t.Error("expected seed data back after reset")
	}
	if !strings.Contains(out.String(), "Existing data removed.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	backups, err := forced.Backups.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Errorf("expected one pre-reset backup, got %d (%v)", len(backups), err)
	}
}

func TestInitWritesConfigAndJSONStore(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.json")
	configPath := filepath.Join(dir, "config.yaml")

	ctx, _ := unopenedContext(t, storage.NewJSONStore(dataPath))
	ctx.ConfigPath = configPath
	ctx.Config.StoragePath = dataPath

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(dataPath); err != nil {
		t.Errorf("data file missing: %v", err)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), dataPath) {
		t.Errorf("config does not record storage path:\n%s", data)
	}

	// a fresh process sees the same ids
	reopened, _ := unopenedContext(t, storage.NewJSONStore(dataPath))
	if err := reopened.Open(); err != nil {
		t.Fatal(err)
	}
	if _, ok := reopened.Store.Habit("1"); !ok {
		t.Error("seed habit 1 not found after reopening")
	}
}
