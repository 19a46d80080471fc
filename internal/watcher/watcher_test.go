package watcher

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/daybook/internal/group"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) has(kind, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Kind == kind && ev.Identity.Key() == key {
			return true
		}
	}
	return false
}

func (r *recorder) forKey(key string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, ev := range r.events {
		if ev.Identity.Key() == key {
			out = append(out, ev)
		}
	}
	return out
}

func startWatcher(t *testing.T, debounce time.Duration) (string, *recorder) {
	t.Helper()
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	rec := &recorder{}
	go func() { _ = Watch(ctx, root, debounce, logger, rec.record) }()
	time.Sleep(100 * time.Millisecond)
	return root, rec
}

func TestWatcherReportsNamedGroupFile(t *testing.T) {
	root, rec := startWatcher(t, 100*time.Millisecond)

	dir := filepath.Join(root, "TodoLists")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "todo_Groceries.json"), []byte(`[{},[]]`), 0o644); err != nil {
		t.Fatal(err)
	}

	want := group.NewNamed(group.TodoLists, "Groceries").Key()
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created", want)
	}, "created event for new group file not delivered")
}

func TestWatcherReportsDeletion(t *testing.T) {
	root, rec := startWatcher(t, 100*time.Millisecond)

	dir := filepath.Join(root, "Goals")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "goal_Fitness.json")
	if err := os.WriteFile(path, []byte(`[{},[]]`), 0o644); err != nil {
		t.Fatal(err)
	}

	want := group.NewNamed(group.Goals, "Fitness").Key()
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created", want)
	}, "created event not delivered")

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("deleted", want)
	}, "deleted event not delivered")
}

func TestWatcherCoalescesSingleSave(t *testing.T) {
	root, rec := startWatcher(t, 300*time.Millisecond)

	dir := filepath.Join(root, "Logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// One logical save: create plus write on the same path.
	if err := os.WriteFile(filepath.Join(dir, "log_Sync.json"), []byte(`[{},[]]`), 0o644); err != nil {
		t.Fatal(err)
	}

	want := group.NewNamed(group.Logs, "Sync").Key()
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return rec.has("created", want)
	}, "created event not delivered")

	// Wait out a full extra window; no further event may surface.
	time.Sleep(400 * time.Millisecond)
	evs := rec.forKey(want)
	if len(evs) != 1 || evs[0].Kind != "created" {
		t.Errorf("events = %+v, want exactly one created", evs)
	}
}

func TestWatcherIgnoresForeignFiles(t *testing.T) {
	root, rec := startWatcher(t, 100*time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, "stray.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Give the watcher time to (wrongly) deliver something.
	time.Sleep(300 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 0 {
		t.Errorf("unexpected events: %+v", rec.events)
	}
}
