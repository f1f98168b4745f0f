// Package filelock guards the session database against concurrent foundry
// processes and provides atomic file writes for exported documents.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DBGuard holds an advisory lock next to the session database so two
// foundry processes cannot interleave writes to the same store.
type DBGuard struct {
	flock *flock.Flock
	path  string
}

// NewDBGuard creates a guard for the database at dbPath. The lock file
// lives alongside the database.
func NewDBGuard(dbPath string) *DBGuard {
	lockPath := dbPath + ".lock"
	return &DBGuard{
		flock: flock.New(lockPath),
		path:  lockPath,
	}
}

// TryAcquire attempts to take the lock without blocking. Returns false when
// another foundry process already holds it.
func (g *DBGuard) TryAcquire() (bool, error) {
	acquired, err := g.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", g.path, err)
	}
	return acquired, nil
}

// Release drops the lock.
func (g *DBGuard) Release() error {
	if err := g.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", g.path, err)
	}
	return nil
}

// AtomicWrite writes data to path via a temp file and rename, so readers
// never observe a partially written export.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}

	// Rename is atomic within one filesystem; the temp file was created in
	// the target directory for exactly that reason.
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	tempFile = nil

	return nil
}
