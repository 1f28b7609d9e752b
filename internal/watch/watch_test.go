package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/store"
)

type countingReloader struct {
	calls  atomic.Int32
	notify chan struct{}
}

func newCountingReloader() *countingReloader {
	return &countingReloader{notify: make(chan struct{}, 16)}
}

func (r *countingReloader) Reload() error {
	r.calls.Add(1)
	select {
	case r.notify <- struct{}{}:
	default:
	}
	return nil
}

func waitForReload(t *testing.T, r *countingReloader) {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "{}")

	r := newCountingReloader()
	w, err := New(path, r, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	writeFile(t, path, `{"version":1}`)
	waitForReload(t, r)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "{}")

	r := newCountingReloader()
	w, err := New(path, r, WithDebounce(200*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		writeFile(t, path, `{"n":`+string(rune('0'+i))+`}`)
	}
	waitForReload(t, r)

	time.Sleep(400 * time.Millisecond)
	if n := r.calls.Load(); n != 1 {
		t.Errorf("expected one reload for a burst of writes, got %d", n)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "{}")

	var reloadErrs atomic.Int32
	r := newCountingReloader()
	w, err := New(path, r, WithDebounce(10*time.Millisecond), OnReload(func(err error) {
		if err != nil {
			reloadErrs.Add(1)
		}
	}))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writeFile(t, filepath.Join(dir, "other.json"), "{}")
	time.Sleep(150 * time.Millisecond)
	if n := r.calls.Load(); n != 0 {
		t.Errorf("expected no reloads for unrelated files, got %d", n)
	}
	if reloadErrs.Load() != 0 {
		t.Error("unexpected reload errors")
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writeFile(t, path, "{}")

	w, err := New(path, newCountingReloader())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-w.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("watch loop did not exit after cancel")
	}

	// Stop still releases the fsnotify watcher and may be repeated
	w.Stop()
	w.Stop()
}

func TestStartFailsForMissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(filepath.Join(t.TempDir(), "missing", "data.json"), newCountingReloader())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected Start to fail when the directory does not exist")
	}
}

func TestWatcherReloadsStoreWrittenByAnotherProvider(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "habits.json")
	open := func() *store.Store {
		p := storage.NewJSONStore(path)
		if err := p.Init(); err != nil {
			t.Fatal(err)
		}
		s := store.New(p, store.WithSeed(models.State{}))
		if err := s.Open(); err != nil {
			t.Fatal(err)
		}
		return s
	}
	local := open()
	if err := local.EnsurePersisted(); err != nil {
		t.Fatal(err)
	}
	remote := open()

	reloaded := make(chan models.State, 16)
	unsubscribe := local.Subscribe(func(e store.Event) {
		if e.Kind == store.EventReloaded {
			select {
			case reloaded <- e.State:
			default:
			}
		}
	})
	defer unsubscribe()

	w, err := New(path, local, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	h, err := remote.AddHabit(models.NewHabitFields("Stretch", "health"))
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case st := <-reloaded:
			if len(st.Habits) == 1 && st.Habits[0].ID == h.ID {
				if _, ok := local.Habit(h.ID); !ok {
					t.Fatal("reload event carried the habit but the store does not")
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the remote habit to be reloaded")
		}
	}
}
