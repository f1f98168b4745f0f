package store

import (
	"context"
	"sync"
	"time"

	"github.com/harrison/foundry/internal/models"
)

// saveTimeout bounds a single snapshot write so a wedged database cannot
// stall the outbox worker forever.
const saveTimeout = 5 * time.Second

// WarnLogger receives outbox failure notices. It matches the console
// logger's warn method so the CLI can plug it in directly.
type WarnLogger interface {
	LogWarn(message string)
}

// Outbox decouples session persistence from interview state transitions.
// SaveAsync enqueues a snapshot and returns immediately; a single worker
// goroutine drains the queue in order. In-memory state is always updated
// before the snapshot is enqueued, so a failed write can only ever leave
// storage behind, never corrupt the live session. Failures flip the outbox
// into an unsynced state that the presentation layer can surface; the next
// successful full-snapshot write clears it.
type Outbox struct {
	store  *Store
	logger WarnLogger

	queue chan *models.Session
	done  chan struct{}

	mu       sync.Mutex
	closed   bool
	unsynced bool
	lastErr  error
}

// NewOutbox starts the outbox worker. The logger may be nil.
func NewOutbox(s *Store, logger WarnLogger) *Outbox {
	o := &Outbox{
		store:  s,
		logger: logger,
		queue:  make(chan *models.Session, 64),
		done:   make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *Outbox) run() {
	defer close(o.done)
	for session := range o.queue {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := o.store.Save(ctx, session)
		cancel()

		o.mu.Lock()
		if err != nil {
			o.unsynced = true
			o.lastErr = err
		} else {
			o.unsynced = false
			o.lastErr = nil
		}
		o.mu.Unlock()

		if err != nil && o.logger != nil {
			o.logger.LogWarn("session save failed, will retry on next change: " + err.Error())
		}
	}
}

// SaveAsync enqueues a snapshot without blocking. Callers must pass a deep
// copy they will not mutate afterwards. When the queue is full the oldest
// pending snapshot is dropped in favor of the newer one; every write is a
// full-state overwrite, so dropping stale intermediates is safe.
func (o *Outbox) SaveAsync(session *models.Session) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	for {
		select {
		case o.queue <- session:
			return
		default:
		}
		// Queue full: discard one stale pending write and retry.
		select {
		case <-o.queue:
		default:
		}
	}
}

// Unsynced reports whether the latest persistence attempt failed, along
// with the failure. The presentation layer shows this as an "unsynced"
// indicator; the core never rolls back or blocks on it.
func (o *Outbox) Unsynced() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.unsynced, o.lastErr
}

// Close drains all pending writes and stops the worker. Safe to call more
// than once.
func (o *Outbox) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()

	close(o.queue)
	<-o.done
}
