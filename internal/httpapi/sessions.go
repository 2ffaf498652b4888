package httpapi

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/openmind/internal/journey"
)

// sessions keeps one journey.Session per user, restored from the store on
// first use. A request holds its user's entry for its whole duration; an
// overlapping request for the same user is rejected with journey.ErrBusy.
type sessions struct {
	orch *journey.Orchestrator

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	mu     sync.Mutex
	sess   *journey.Session
	loaded bool
}

func newSessions(orch *journey.Orchestrator) *sessions {
	return &sessions{orch: orch, entries: make(map[string]*sessionEntry)}
}

// acquire returns the user's session, loading the most recent journey the
// first time. The returned release must be called when the request ends.
func (s *sessions) acquire(ctx context.Context, userID string) (*journey.Session, func(), error) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	if !ok {
		e = &sessionEntry{sess: journey.NewSession(userID)}
		s.entries[userID] = e
	}
	s.mu.Unlock()

	if !e.mu.TryLock() {
		return nil, nil, journey.ErrBusy
	}
	if !e.loaded {
		// An empty journey still leaves a usable session.
		if err := s.orch.LoadMostRecentJourney(ctx, e.sess); err != nil && !isEmptyJourney(err) {
			e.mu.Unlock()
			return nil, nil, err
		}
		e.loaded = true
	}
	return e.sess, e.mu.Unlock, nil
}

func isEmptyJourney(err error) bool {
	return errors.Is(err, journey.ErrJourneyEmpty)
}
