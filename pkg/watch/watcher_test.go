package watch

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/panbanda/f90lens/pkg/config"
)

func newTestWatcher(t *testing.T, dir string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, config.DefaultConfig(), debounce, WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestNewWatcher(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()

	tests := []struct {
		name     string
		debounce time.Duration
		want     time.Duration
	}{
		{"default debounce", 0, DefaultDebounce},
		{"custom debounce", time.Second, time.Second},
		{"negative debounce defaults", -time.Second, DefaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWatcher(tmpDir, cfg, tt.debounce)
			if err != nil {
				t.Fatalf("NewWatcher() error = %v", err)
			}
			defer w.Stop()

			if w.fsWatcher == nil {
				t.Error("fsWatcher should not be nil")
			}
			if w.config != cfg {
				t.Error("config should match")
			}
			if w.out != os.Stdout {
				t.Error("output should default to stdout")
			}
			if w.debounce != tt.want {
				t.Errorf("debounce = %v, want %v", w.debounce, tt.want)
			}
		})
	}
}

func TestWatcher_handleEvent(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, time.Second)

	tests := []struct {
		name        string
		event       fsnotify.Event
		wantPending bool
	}{
		{"write to fortran file", fsnotify.Event{Name: filepath.Join(tmpDir, "solver.f90"), Op: fsnotify.Write}, true},
		{"create of fortran file", fsnotify.Event{Name: filepath.Join(tmpDir, "new.f90"), Op: fsnotify.Create}, true},
		{"remove ignored", fsnotify.Event{Name: filepath.Join(tmpDir, "old.f90"), Op: fsnotify.Remove}, false},
		{"chmod ignored", fsnotify.Event{Name: filepath.Join(tmpDir, "mode.f90"), Op: fsnotify.Chmod}, false},
		{"non-fortran ignored", fsnotify.Event{Name: filepath.Join(tmpDir, "notes.txt"), Op: fsnotify.Write}, false},
		{"beta extension ignored by default", fsnotify.Event{Name: filepath.Join(tmpDir, "legacy.f"), Op: fsnotify.Write}, false},
		{"upper case extension is distinct", fsnotify.Event{Name: filepath.Join(tmpDir, "MAIN.F90"), Op: fsnotify.Write}, false},
		{"excluded build dir", fsnotify.Event{Name: filepath.Join(tmpDir, "build", "gen.f90"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.mu.Lock()
			w.pending = make(map[string]time.Time)
			w.mu.Unlock()

			w.handleEvent(tt.event)

			w.mu.Lock()
			_, found := w.pending[tt.event.Name]
			w.mu.Unlock()

			if found != tt.wantPending {
				t.Errorf("pending[%v] = %v, want %v", tt.event.Name, found, tt.wantPending)
			}
		})
	}
}

func TestWatcher_handleEvent_BetaExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Scan.IncludeBetaExtensions = true

	w, err := NewWatcher(tmpDir, cfg, time.Second, WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	path := filepath.Join(tmpDir, "legacy.F90")
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	if w.Pending() != 1 {
		t.Errorf("beta extension should be watched when enabled, pending = %d", w.Pending())
	}
}

func TestWatcher_handleEvent_NewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, time.Second)

	sub := filepath.Join(tmpDir, "src")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	w.handleEvent(fsnotify.Event{Name: sub, Op: fsnotify.Create})

	found := false
	for _, dir := range w.WatchedDirs() {
		if dir == sub {
			found = true
		}
	}
	if !found {
		t.Errorf("new directory should be watched, got %v", w.WatchedDirs())
	}
	if w.Pending() != 0 {
		t.Error("directories should not be queued as changes")
	}
}

func TestWatcher_processPending(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, 50*time.Millisecond)

	var got []string
	w.SetCallback(func(path string) {
		got = append(got, path)
	})

	a := filepath.Join(tmpDir, "a.f90")
	b := filepath.Join(tmpDir, "b.f90")
	w.mu.Lock()
	w.pending[b] = time.Now().Add(-time.Second)
	w.pending[a] = time.Now().Add(-time.Second)
	w.pending[filepath.Join(tmpDir, "fresh.f90")] = time.Now()
	w.mu.Unlock()

	w.processPending()

	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("callbacks = %v, want [%s %s]", got, a, b)
	}
	if w.Pending() != 1 {
		t.Errorf("fresh change should stay pending, pending = %d", w.Pending())
	}
}

func TestWatcher_processPending_NoCallback(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, 10*time.Millisecond)

	w.mu.Lock()
	w.pending[filepath.Join(tmpDir, "a.f90")] = time.Now().Add(-time.Second)
	w.mu.Unlock()

	w.processPending()

	if w.Pending() != 0 {
		t.Error("ready changes should be dropped without a callback")
	}
}

func TestWatcher_runCallbackOutput(t *testing.T) {
	tmpDir := t.TempDir()
	var buf bytes.Buffer
	w, err := NewWatcher(tmpDir, config.DefaultConfig(), time.Second, WithOutput(&buf))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	w.runCallback(func(string) {}, filepath.Join(tmpDir, "src", "a.f90"))

	if !bytes.Contains(buf.Bytes(), []byte("File changed: "+filepath.Join("src", "a.f90"))) {
		t.Errorf("output should name the relative path, got %q", buf.String())
	}
}

func TestWatcher_Start_Context(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after cancellation")
	}
}

func TestWatcher_Start_FileChange(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, 50*time.Millisecond)

	var count atomic.Int32
	var mu sync.Mutex
	var lastPath string
	w.SetCallback(func(path string) {
		count.Add(1)
		mu.Lock()
		lastPath = path
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(tmpDir, "solver.f90")
	if err := os.WriteFile(testFile, []byte("program solver\nend program solver\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	if count.Load() == 0 {
		t.Fatal("callback should be called when a Fortran file is written")
	}
	mu.Lock()
	defer mu.Unlock()
	if lastPath != testFile {
		t.Errorf("callback path = %v, want %v", lastPath, testFile)
	}
}

func TestWatcher_Start_ExcludedDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "build", "obj"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0755); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, tmpDir, 50*time.Millisecond)
	if err := w.addTree(tmpDir); err != nil {
		t.Fatalf("addTree() error = %v", err)
	}

	var sawSrc bool
	for _, path := range w.WatchedDirs() {
		switch filepath.Base(path) {
		case "build", "obj":
			t.Errorf("%s should not be watched", path)
		case "src":
			sawSrc = true
		}
	}
	if !sawSrc {
		t.Error("src should be watched")
	}
}

func TestWatcher_ConcurrentHandleEvent(t *testing.T) {
	tmpDir := t.TempDir()
	w := newTestWatcher(t, tmpDir, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := filepath.Join(tmpDir, "f"+string(rune('a'+n%26))+".f90")
			w.handleEvent(fsnotify.Event{Name: name, Op: fsnotify.Write})
		}(i)
	}
	wg.Wait()

	if w.Pending() != 26 {
		t.Errorf("pending = %d, want 26 distinct files", w.Pending())
	}
}

func BenchmarkHandleEvent(b *testing.B) {
	tmpDir := b.TempDir()
	w, err := NewWatcher(tmpDir, config.DefaultConfig(), time.Second, WithOutput(io.Discard))
	if err != nil {
		b.Fatal(err)
	}
	defer w.Stop()

	event := fsnotify.Event{Name: filepath.Join(tmpDir, "bench.f90"), Op: fsnotify.Write}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.handleEvent(event)
	}
}

func TestWatcher_Start_ReportsWatchedDirs(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "src", "solvers"), 0755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w, err := NewWatcher(tmpDir, config.DefaultConfig(), time.Second, WithOutput(&buf))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	if want := "(3 directories)"; !bytes.Contains(buf.Bytes(), []byte(want)) {
		t.Errorf("start message should contain %q, got %q", want, buf.String())
	}
}
