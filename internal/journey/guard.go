package journey

import "sync"

// guard serializes journey-changing operations per user.
type guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func newGuard() *guard {
	return &guard{busy: make(map[string]struct{})}
}

// acquire marks the user busy and returns the release func, or ErrBusy.
func (g *guard) acquire(userID string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[userID]; ok {
		return nil, ErrBusy
	}
	g.busy[userID] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.busy, userID)
		g.mu.Unlock()
	}, nil
}

// isBusy reports whether an operation is in flight for the user.
func (g *guard) isBusy(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[userID]
	return ok
}
