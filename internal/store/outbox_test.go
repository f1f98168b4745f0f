package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (c *captureLogger) LogWarn(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, message)
}

func (c *captureLogger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

func TestOutboxPersistsSnapshots(t *testing.T) {
	s := newTestStore(t)
	o := NewOutbox(s, nil)

	session := sampleSession("Helper")
	o.SaveAsync(session.Clone())

	session.Requirements.Name = "Renamed"
	o.SaveAsync(session.Clone())

	// Close drains the queue, so the final state is on disk afterwards.
	o.Close()

	loaded, err := s.Load(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Renamed", loaded.Requirements.Name)

	unsynced, lastErr := o.Unsynced()
	assert.False(t, unsynced)
	assert.NoError(t, lastErr)
}

func TestOutboxSurfacesFailuresWithoutBlocking(t *testing.T) {
	s := newTestStore(t)
	logger := &captureLogger{}
	o := NewOutbox(s, logger)

	// Closing the underlying database makes every save fail.
	require.NoError(t, s.Close())

	o.SaveAsync(sampleSession("Doomed").Clone())
	o.Close()

	unsynced, lastErr := o.Unsynced()
	assert.True(t, unsynced)
	assert.Error(t, lastErr)
	assert.Equal(t, 1, logger.count())
}

func TestOutboxRecoversAfterSuccessfulWrite(t *testing.T) {
	s := newTestStore(t)
	o := NewOutbox(s, nil)

	// A nil session makes Save fail without touching the database.
	o.SaveAsync(nil)
	o.SaveAsync(sampleSession("Helper").Clone())

	// Wait for the worker to drain both writes.
	o.Close()

	unsynced, lastErr := o.Unsynced()
	assert.False(t, unsynced, "a later successful write clears the unsynced flag")
	assert.NoError(t, lastErr)
}

func TestOutboxDropsOldestWhenQueueIsFull(t *testing.T) {
	s := newTestStore(t)
	o := NewOutbox(s, nil)

	session := sampleSession("Flood")
	// Push far more snapshots than the queue holds; enqueues must never
	// block and the final state must win.
	for i := 0; i < 500; i++ {
		o.SaveAsync(session.Clone())
	}
	session.Requirements.Name = "Final"
	o.SaveAsync(session.Clone())
	o.Close()

	loaded, err := s.Load(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Final", loaded.Requirements.Name)
}

func TestOutboxSaveAfterCloseIsNoOp(t *testing.T) {
	s := newTestStore(t)
	o := NewOutbox(s, nil)
	o.Close()

	// Must not panic on the closed channel, and double close is safe.
	o.SaveAsync(sampleSession("Late").Clone())
	o.Close()
}
