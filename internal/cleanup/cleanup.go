package cleanup

import (
	"log/slog"
	"os"
	"sync"
)

// Tracker remembers temporary files that must not survive an interrupted
// run. Files are registered while being written and released once they are
// committed.
type Tracker struct {
	mu     sync.Mutex
	files  map[string]struct{}
	logger *slog.Logger
}

// NewTracker creates a new cleanup tracker. A nil logger uses slog.Default.
func NewTracker(logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		files:  make(map[string]struct{}),
		logger: logger,
	}
}

// SetLogger replaces the logger used to report cleanup failures.
func (t *Tracker) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	t.mu.Lock()
	t.logger = l
	t.mu.Unlock()
}

// Register adds path to the cleanup list and returns a func that removes it
// again. Stdout ("-") and empty paths are ignored.
func (t *Tracker) Register(path string) (release func()) {
	if path == "" || path == "-" {
		return func() {}
	}
	t.mu.Lock()
	t.files[path] = struct{}{}
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.files, path)
		t.mu.Unlock()
	}
}

// Pending returns the currently registered paths.
func (t *Tracker) Pending() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	return files
}

// Cleanup removes all registered files
func (t *Tracker) Cleanup() {
	t.mu.Lock()
	files := make([]string, 0, len(t.files))
	for path := range t.files {
		files = append(files, path)
	}
	t.files = make(map[string]struct{})
	logger := t.logger
	t.mu.Unlock()

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Best effort cleanup - errors are non-critical
			logger.Warn("cleanup_failed", "file", path, "error", err)
			continue
		}
		logger.Debug("cleanup_removed", "file", path)
	}
}
