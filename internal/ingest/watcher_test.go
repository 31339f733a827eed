package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStartWatcherEmitsReports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "12012025s.pdf"), "existing")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true}, quietLogger())
	if err != nil {
		t.Fatalf("StartWatcher failed: %v", err)
	}

	expect := func(want string) {
		t.Helper()
		select {
		case got := <-events:
			if got != want {
				t.Fatalf("event = %s, want %s", got, want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
	expect(filepath.Join(root, "12012025s.pdf"))

	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	fresh := filepath.Join(root, "12022025s.pdf")
	writeFile(t, fresh, "new")
	expect(fresh)
}

func TestStartWatcherNeedsRoots(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}, quietLogger()); err == nil {
		t.Fatal("expected error")
	}
}
