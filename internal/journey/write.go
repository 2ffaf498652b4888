package journey

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	writeAttempts = 3
	writeBackoff  = 50 * time.Millisecond
)

// PendingWrite is a background store write the caller may wait for or
// ignore. Failures are logged either way. Writes are retried, so a write
// reported as failed may still have been applied once; every queued write
// is idempotent.
type PendingWrite struct {
	done chan struct{}
	err  error
}

// Wait blocks until the write finishes or ctx is done.
func (w *PendingWrite) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return w.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the write has finished.
func (w *PendingWrite) Done() <-chan struct{} { return w.done }

// writeQueue runs writes in background goroutines, in submission order per
// user, so the latest submission is always the one left in the store.
type writeQueue struct {
	logger *zap.Logger

	mu   sync.Mutex
	last map[string]*PendingWrite
	wg   sync.WaitGroup
}

func newWriteQueue(logger *zap.Logger) *writeQueue {
	return &writeQueue{logger: logger, last: make(map[string]*PendingWrite)}
}

// enqueue schedules fn after the user's previous write. fn runs with a
// context detached from ctx's cancellation.
func (q *writeQueue) enqueue(ctx context.Context, userID string, fn func(context.Context) error) *PendingWrite {
	w := &PendingWrite{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	q.mu.Lock()
	prev := q.last[userID]
	q.last[userID] = w
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(w.done)
		if prev != nil {
			<-prev.done
		}

		for attempt := 1; attempt <= writeAttempts; attempt++ {
			w.err = fn(ctx)
			if w.err == nil {
				break
			}
			logWriteFailure(q.logger, userID, attempt, w.err)
			if attempt < writeAttempts {
				time.Sleep(writeBackoff * time.Duration(attempt))
			}
		}

		q.mu.Lock()
		if q.last[userID] == w {
			delete(q.last, userID)
		}
		q.mu.Unlock()
	}()
	return w
}

func (q *writeQueue) wait() {
	q.wg.Wait()
}

func logWriteFailure(logger *zap.Logger, userID string, attempt int, err error) {
	logger.Warn("quiz score write failed",
		zap.String("user_id", userID),
		zap.Int("attempt", attempt),
		zap.Error(err),
	)
}
