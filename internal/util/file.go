package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile writes to a temporary file next to its target and renames it
// into place on Commit, so readers never observe a partial file.
type AtomicFile struct {
	*os.File
	target    string
	committed bool
}

// CreateAtomic creates the temporary file for target. The caller must call
// Commit or Abort.
func CreateAtomic(target string) (*AtomicFile, error) {
	dir := filepath.Dir(target)
	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file in %q: %w", dir, err)
	}
	return &AtomicFile{File: f, target: target}, nil
}

// TempPath returns the path of the temporary file.
func (a *AtomicFile) TempPath() string { return a.File.Name() }

// Target returns the final path.
func (a *AtomicFile) Target() string { return a.target }

// Commit flushes, closes and renames the temporary file onto the target.
func (a *AtomicFile) Commit() error {
	if a.committed {
		return nil
	}
	if err := a.File.Sync(); err != nil {
		a.Abort()
		return fmt.Errorf("failed to sync %q: %w", a.TempPath(), err)
	}
	if err := a.File.Close(); err != nil {
		os.Remove(a.TempPath())
		return fmt.Errorf("failed to close %q: %w", a.TempPath(), err)
	}
	if err := os.Rename(a.TempPath(), a.target); err != nil {
		os.Remove(a.TempPath())
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	a.committed = true
	return nil
}

// Abort discards the temporary file. It is a no-op after Commit.
func (a *AtomicFile) Abort() {
	if a.committed {
		return
	}
	a.File.Close()
	os.Remove(a.TempPath())
}
