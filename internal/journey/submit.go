package journey

import (
	"context"
	"fmt"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/store"
)

// QuizResult is the graded submission. The score is already applied to the
// session; Write tracks its persistence.
type QuizResult struct {
	Score     float64
	Correct   int
	Total     int
	Points    int
	Celebrate bool
	Write     *PendingWrite
}

// SubmitQuiz grades the selections against the active topic's quiz and
// records the score. The session is updated immediately and the store
// write runs in the background. A resubmission replaces the earlier score
// and its points.
func (o *Orchestrator) SubmitQuiz(ctx context.Context, sess *Session, selections []int) (*QuizResult, error) {
	ctx, span := o.startSpan(ctx, "SubmitQuiz", sess)
	res, err := o.submitQuiz(ctx, sess, selections)
	return res, o.finish(span, sess, noticeQuiz, err)
}

func (o *Orchestrator) submitQuiz(ctx context.Context, sess *Session, selections []int) (*QuizResult, error) {
	if sess.Journey == nil || sess.Topic == nil {
		return nil, ErrNoActiveJourney
	}
	q, err := TopicQuiz(sess.Topic)
	if err != nil {
		return nil, err
	}
	if q.Len() == 0 {
		return nil, ErrNoQuiz
	}
	graded, err := quiz.Score(q, selections)
	if err != nil {
		return nil, err
	}

	score := graded.Score
	topic := *sess.Topic
	topic.QuizScore = &score
	sess.Topic = &topic

	userID, journeyID, title := sess.UserID, sess.Journey.ID, sess.Journey.Title
	write := o.writes.enqueue(ctx, userID, func(ctx context.Context) error {
		return o.persistScore(ctx, userID, journeyID, title, topic.ID, graded)
	})

	return &QuizResult{
		Score:     score,
		Correct:   graded.Correct,
		Total:     graded.Total,
		Points:    gamification.QuizPoints(graded.Correct),
		Celebrate: gamification.Celebrate(score),
		Write:     write,
	}, nil
}

// persistScore merges the score onto the topic and moves the user's points
// by the difference from the previously stored submission.
func (o *Orchestrator) persistScore(ctx context.Context, userID, journeyID, title, topicID string, graded quiz.Result) error {
	now := o.now().UTC()
	return o.store.WithTx(ctx, func(tx *store.Tx) error {
		stored, err := tx.Topics().Get(ctx, topicID)
		if err != nil {
			return err
		}
		prevCorrect := 0
		if stored.QuizScore != nil {
			prevCorrect = quiz.CorrectFor(*stored.QuizScore, graded.Total)
		}
		delta := gamification.QuizPointsDelta(prevCorrect, graded.Correct)

		if err := tx.Topics().SetQuizScore(ctx, topicID, graded.Score); err != nil {
			return err
		}
		if _, err := tx.Profiles().Ensure(ctx, userID, now); err != nil {
			return err
		}
		if delta != 0 {
			if err := tx.Profiles().AddProgress(ctx, userID, 0, delta, now); err != nil {
				return err
			}
			if err := tx.Leaderboard().Add(ctx, title, userID, 0, delta, now); err != nil {
				return err
			}
		}
		return tx.Activity().Append(ctx, &store.ActivityEvent{
			Timestamp: now,
			UserID:    userID,
			Kind:      store.KindQuizScored,
			JourneyID: journeyID,
			TopicID:   topicID,
			Detail:    fmt.Sprintf("%d/%d (%.2f%%)", graded.Correct, graded.Total, graded.Score),
		})
	})
}
