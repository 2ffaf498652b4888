package journey

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/catalog"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/topics"
)

// StartJourney generates day 1 of a new journey from the interests and
// persists the journey with its first topic in one transaction. On any
// failure nothing is written and the session is left as it was. Starting
// a journey does not change the streak.
func (o *Orchestrator) StartJourney(ctx context.Context, sess *Session, interests []string) error {
	ctx, span := o.startSpan(ctx, "StartJourney", sess)
	return o.finish(span, sess, noticeStart, o.startJourney(ctx, sess, interests))
}

// StartSubject starts a journey on a pre-generated catalog subject, using
// the subject name as the only interest.
func (o *Orchestrator) StartSubject(ctx context.Context, sess *Session, streamID, subjectID string) error {
	ctx, span := o.startSpan(ctx, "StartSubject", sess)
	subject, err := catalog.GetSubject(streamID, subjectID)
	if err != nil {
		return o.finish(span, sess, noticeStart, fmt.Errorf("%w: %v", ErrUnknownSubject, err))
	}
	return o.finish(span, sess, noticeStart, o.startJourney(ctx, sess, subject.Interests()))
}

func (o *Orchestrator) startJourney(ctx context.Context, sess *Session, interests []string) error {
	interests = cleanInterests(interests)
	if len(interests) == 0 {
		return ErrNoInterests
	}
	release, err := o.guard.acquire(sess.UserID)
	if err != nil {
		return err
	}
	defer release()

	d, err := o.generateDay(ctx, topics.Input{Interests: interests})
	if err != nil {
		return err
	}

	now := o.now().UTC()
	j := &store.Journey{
		ID:        o.newID(),
		UserID:    sess.UserID,
		Title:     d.topic.JourneyTitle,
		Interests: interests,
		TotalDays: max(d.topic.TotalDays, 1),
		StartedAt: now,
	}
	t, err := o.record(d, o.newID(), j.ID, 1, now)
	if err != nil {
		return err
	}
	j.TopicIDs = []string{t.ID}

	err = o.store.WithTx(ctx, func(tx *store.Tx) error {
		if _, err := tx.Profiles().Ensure(ctx, sess.UserID, now); err != nil {
			return err
		}
		if err := tx.Journeys().Create(ctx, j); err != nil {
			return err
		}
		if err := tx.Topics().Create(ctx, t); err != nil {
			return err
		}
		if err := tx.Leaderboard().Ensure(ctx, j.Title, sess.UserID, now); err != nil {
			return err
		}
		return tx.Activity().Append(ctx, &store.ActivityEvent{
			Timestamp: now,
			UserID:    sess.UserID,
			Kind:      store.KindJourneyStarted,
			JourneyID: j.ID,
			TopicID:   t.ID,
			Detail:    j.Title,
		})
	})
	if err != nil {
		return fmt.Errorf("persist journey: %w", err)
	}

	sess.Interests = interests
	sess.Journey = j
	sess.Topic = t

	o.logger.Info("journey started",
		zap.String("user_id", sess.UserID),
		zap.String("journey_id", j.ID),
		zap.String("title", j.Title),
		zap.Int("total_days", j.TotalDays),
	)
	return nil
}
