package journey

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/topics"
)

// AdvanceResult reports the counters after a successful advancement.
type AdvanceResult struct {
	Streak    int
	Points    int
	Milestone *gamification.Milestone
}

// AdvanceToNextDay generates the next day of the session's journey. One
// transaction appends the topic, updates the journey's topic list and day
// count, and increments the streak by exactly one. On failure the previous
// topic stays active and the streak is unchanged.
func (o *Orchestrator) AdvanceToNextDay(ctx context.Context, sess *Session) (*AdvanceResult, error) {
	ctx, span := o.startSpan(ctx, "AdvanceToNextDay", sess)
	res, err := o.advance(ctx, sess)
	return res, o.finish(span, sess, noticeAdvance, err)
}

func (o *Orchestrator) advance(ctx context.Context, sess *Session) (*AdvanceResult, error) {
	if sess.Journey == nil || sess.Topic == nil {
		return nil, ErrNoActiveJourney
	}
	if sess.Topic.IsLastDay {
		return nil, ErrJourneyComplete
	}
	release, err := o.guard.acquire(sess.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	cur := sess.Journey
	interests := sess.Interests
	if len(interests) == 0 {
		interests = cur.Interests
	}

	d, err := o.generateDay(ctx, topics.Input{
		Interests:    interests,
		JourneyTitle: cur.Title,
		TotalDays:    cur.TotalDays,
	})
	if err != nil {
		return nil, err
	}

	now := o.now().UTC()
	dayNum := sess.Topic.Day + 1
	t, err := o.record(d, o.newID(), cur.ID, dayNum, now)
	if err != nil {
		return nil, err
	}
	totalDays := max(cur.TotalDays, d.topic.TotalDays, dayNum)

	var (
		updated *store.Journey
		profile *store.Profile
	)
	err = o.store.WithTx(ctx, func(tx *store.Tx) error {
		fresh, err := tx.Journeys().Get(ctx, cur.ID)
		if err != nil {
			return err
		}
		if len(fresh.TopicIDs) != sess.Topic.Day {
			return ErrStaleSession
		}
		if err := tx.Topics().Create(ctx, t); err != nil {
			return err
		}
		topicIDs := append(slices.Clone(fresh.TopicIDs), t.ID)
		if err := tx.Journeys().UpdateProgress(ctx, cur.ID, topicIDs, totalDays); err != nil {
			return err
		}
		if _, err := tx.Profiles().Ensure(ctx, sess.UserID, now); err != nil {
			return err
		}
		if err := tx.Profiles().AddProgress(ctx, sess.UserID, 1, gamification.AdvancePoints, now); err != nil {
			return err
		}
		if err := tx.Leaderboard().Add(ctx, cur.Title, sess.UserID, 1, gamification.AdvancePoints, now); err != nil {
			return err
		}
		if err := tx.Activity().Append(ctx, &store.ActivityEvent{
			Timestamp: now,
			UserID:    sess.UserID,
			Kind:      store.KindDayAdvanced,
			JourneyID: cur.ID,
			TopicID:   t.ID,
			Detail:    fmt.Sprintf("day %d: %s", dayNum, t.Title),
		}); err != nil {
			return err
		}

		profile, err = tx.Profiles().Get(ctx, sess.UserID)
		if err != nil {
			return err
		}
		fresh.TopicIDs = topicIDs
		fresh.TotalDays = totalDays
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persist day %d: %w", dayNum, err)
	}

	sess.Interests = interests
	sess.Journey = updated
	sess.Topic = t

	res := &AdvanceResult{
		Streak:    profile.Streak,
		Points:    profile.Points,
		Milestone: gamification.MilestoneFor(profile.Streak),
	}
	o.logger.Info("day advanced",
		zap.String("user_id", sess.UserID),
		zap.String("journey_id", cur.ID),
		zap.Int("day", dayNum),
		zap.Bool("last_day", t.IsLastDay),
		zap.Int("streak", res.Streak),
	)
	return res, nil
}
