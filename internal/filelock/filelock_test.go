package filelock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBGuardAcquireAndRelease(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	guard := NewDBGuard(dbPath)
	acquired, err := guard.TryAcquire()
	require.NoError(t, err)
	require.True(t, acquired)

	require.NoError(t, guard.Release())

	// Lock is reacquirable after release.
	acquired, err = guard.TryAcquire()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, guard.Release())
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "plan.md")

	require.NoError(t, AtomicWrite(path, []byte("first")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrite replaces the content in one step.
	require.NoError(t, AtomicWrite(path, []byte("second")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan.md", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
