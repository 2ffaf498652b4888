package journey

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/store"
)

// LoadMostRecentJourney rebuilds the session from the user's latest
// journey and its highest day. A user without journeys gets an empty
// session and no error. A journey without topics is reported as
// ErrJourneyEmpty and left in the session with a nil topic.
func (o *Orchestrator) LoadMostRecentJourney(ctx context.Context, sess *Session) error {
	ctx, span := o.startSpan(ctx, "LoadMostRecentJourney", sess)
	return o.finish(span, sess, noticeLoad, o.load(ctx, sess, ""))
}

// SelectJourney makes one of the user's past journeys the active one.
func (o *Orchestrator) SelectJourney(ctx context.Context, sess *Session, journeyID string) error {
	ctx, span := o.startSpan(ctx, "SelectJourney", sess)
	return o.finish(span, sess, noticeLoad, o.load(ctx, sess, journeyID))
}

func (o *Orchestrator) load(ctx context.Context, sess *Session, journeyID string) error {
	release, err := o.guard.acquire(sess.UserID)
	if err != nil {
		return err
	}
	defer release()

	var j *store.Journey
	if journeyID == "" {
		j, err = o.store.Journeys().Latest(ctx, sess.UserID)
		if err != nil {
			return fmt.Errorf("load latest journey: %w", err)
		}
		if j == nil {
			sess.clear()
			return nil
		}
	} else {
		j, err = o.store.Journeys().Get(ctx, journeyID)
		if err != nil {
			return fmt.Errorf("load journey: %w", err)
		}
		if j.UserID != sess.UserID {
			return fmt.Errorf("journey %s: %w", journeyID, store.ErrNotFound)
		}
	}

	t, err := o.store.Topics().Latest(ctx, j.ID)
	if err != nil {
		return fmt.Errorf("load latest topic: %w", err)
	}

	sess.Journey = j
	sess.Topic = t
	sess.Interests = j.Interests
	if t == nil {
		o.logger.Warn("journey has no topics", zap.String("journey_id", j.ID))
		return ErrJourneyEmpty
	}
	return nil
}
