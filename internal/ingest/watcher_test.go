package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePDF(t *testing.T, dir string, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWatcherDeliversBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Millisecond,
	}, quietLogger())
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	const n = 200
	want := map[string]struct{}{}
	for i := 0; i < n; i++ {
		want[writePDF(t, dir, fmt.Sprintf("doc-%04d.pdf", i))] = struct{}{}
	}
	writePDF(t, dir, "notes.txt")

	seen := map[string]struct{}{}
	deadline := time.After(10 * time.Second)
	for len(seen) < n {
		select {
		case p, ok := <-evCh:
			if !ok {
				t.Fatalf("event channel closed after %d of %d paths", len(seen), n)
			}
			if filepath.Ext(p) != ".pdf" {
				t.Fatalf("non-PDF path delivered: %s", p)
			}
			seen[p] = struct{}{}
		case <-deadline:
			t.Fatalf("timed out with %d of %d paths delivered", len(seen), n)
		}
	}
	for p := range want {
		if _, ok := seen[p]; !ok {
			t.Errorf("path never delivered: %s", p)
		}
	}
}

func TestWatcherShutdownDuringBurst(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Microsecond,
	}, quietLogger())
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	stop := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			name := filepath.Join(dir, fmt.Sprintf("burst-%05d.pdf", i))
			_ = os.WriteFile(name, []byte("%PDF-1.4"), 0o644)
		}
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	// The channel must close cleanly even when debounce timers race the
	// cancellation.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for range evCh {
		}
	}()
	select {
	case <-closed:
	case <-time.After(10 * time.Second):
		t.Fatal("event channel never closed after cancellation")
	}
	close(stop)
	<-writerDone
}
