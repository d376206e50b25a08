package driver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chuckjaz/dyego-vibe/internal/driver"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := driver.NewWatcher(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "main.dg")
	if err := os.WriteFile(path, []byte("val x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case changed := <-w.Changes():
			if filepath.Clean(changed) == filepath.Clean(path) {
				return
			}
		case err := <-w.Errors():
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			t.Fatalf("no change event for %s", path)
		}
	}
}

func TestWatcherRejectsMissingPath(t *testing.T) {
	_, err := driver.NewWatcher(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}
