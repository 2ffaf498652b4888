package journey

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/offline"
	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/topics"
)

func TestJourney_EndToEnd(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := zaptest.NewLogger(t)
	mock := offline.New().Provider()
	p := llm.WithLogging(mock, llm.ProviderMock, st.EventRepo(), logger)

	o := New(st,
		topics.New(p, topics.DefaultConfig()),
		reading.New(p, reading.DefaultConfig()),
		quiz.New(p, quiz.DefaultConfig()),
		WithLogger(logger),
	)
	t.Cleanup(o.Close)

	sess := NewSession("ada")
	require.NoError(t, o.StartJourney(ctx, sess, []string{"astrophysics", " ", "Astrophysics"}))
	assert.Equal(t, "Cosmic Curiosities", sess.Journey.Title)
	assert.Equal(t, 7, sess.Journey.TotalDays)
	assert.Equal(t, "Event Horizons", sess.Topic.Title)
	assert.Equal(t, 1, sess.Topic.Day)
	assert.True(t, sess.Topic.IsFirstDay)
	assert.Equal(t, []string{"astrophysics"}, sess.Interests)

	material, err := TopicMaterial(sess.Topic)
	require.NoError(t, err)
	assert.Len(t, material.Articles, 2)

	q, err := TopicQuiz(sess.Topic)
	require.NoError(t, err)
	sel := quiz.NewSelections(q)
	assert.False(t, quiz.Complete(q, sel))
	sel[0], sel[1], sel[2] = 1, 0, 0

	res, err := o.SubmitQuiz(ctx, sess, sel)
	require.NoError(t, err)
	assert.InDelta(t, 66.67, res.Score, 0.005)
	assert.False(t, res.Celebrate)
	require.NoError(t, res.Write.Wait(ctx))

	adv, err := o.AdvanceToNextDay(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, adv.Streak)
	assert.Equal(t, 20, adv.Points, "10 from the quiz and 10 for advancing")
	assert.Equal(t, "Stellar Nurseries", sess.Topic.Title)
	assert.Equal(t, 2, sess.Topic.Day)
	assert.False(t, sess.Topic.IsFirstDay)

	resumed := NewSession("ada")
	require.NoError(t, o.LoadMostRecentJourney(ctx, resumed))
	assert.Equal(t, sess.Topic.ID, resumed.Topic.ID)
	assert.Equal(t, []string{sess.Topic.ID}, resumed.Journey.TopicIDs[1:])

	events, err := st.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 6)
	purposes := map[string]int{}
	for _, e := range events {
		assert.True(t, e.Success)
		purposes[e.Purpose]++
	}
	assert.Equal(t, map[string]int{llm.PurposeTopic: 2, llm.PurposeReading: 2, llm.PurposeQuiz: 2}, purposes)

	counts, err := st.Activity().CountByKind(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		store.KindJourneyStarted: 1,
		store.KindQuizScored:     1,
		store.KindDayAdvanced:    1,
	}, counts)

	board, err := st.Leaderboard().TopForJourney(ctx, "Cosmic Curiosities", 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Streak)
	assert.Equal(t, 20, board[0].Points)
}
