package journey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/openmind/internal/store"
)

func TestLoadMostRecentJourney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := f.start(t, "u1", "jazz")
	f.gen.set(func(g *fakeGen) { g.title = "Event Horizons" })
	latest := f.start(t, "u1", "black holes")
	f.advance(t, latest)
	f.advance(t, latest)

	sess := NewSession("u1")
	require.NoError(t, f.o.LoadMostRecentJourney(ctx, sess))
	require.NotNil(t, sess.Journey)
	assert.Equal(t, latest.Journey.ID, sess.Journey.ID)
	assert.NotEqual(t, old.Journey.ID, sess.Journey.ID)
	assert.Equal(t, "Event Horizons", sess.Journey.Title)
	require.NotNil(t, sess.Topic)
	assert.Equal(t, 3, sess.Topic.Day, "highest day is active")
	assert.Equal(t, []string{"black holes"}, sess.Interests)
	assert.Equal(t, PhaseActive, sess.Phase())
	assert.True(t, sess.CanAdvance())
}

func TestLoadMostRecentJourney_NoJourneys(t *testing.T) {
	f := newFixture(t)

	sess := NewSession("newcomer")
	sess.Interests = []string{"leftover"}
	require.NoError(t, f.o.LoadMostRecentJourney(context.Background(), sess))
	assert.Nil(t, sess.Journey)
	assert.Nil(t, sess.Topic)
	assert.Equal(t, PhaseNoJourney, sess.Phase())
}

func TestLoadMostRecentJourney_EmptyJourney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.start(t, "u1", "jazz")

	require.NoError(t, f.store.Journeys().Create(ctx, &store.Journey{
		ID:        "orphan",
		UserID:    "u1",
		Title:     "Half Written",
		Interests: []string{"jazz"},
		TotalDays: 3,
		StartedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	sess := NewSession("u1")
	err := f.o.LoadMostRecentJourney(ctx, sess)
	require.ErrorIs(t, err, ErrJourneyEmpty)
	var n *Notice
	require.ErrorAs(t, err, &n)
	assert.Equal(t, "Could Not Load Journey", n.Title)

	require.NotNil(t, sess.Journey)
	assert.Equal(t, "orphan", sess.Journey.ID)
	assert.Nil(t, sess.Topic)
	assert.False(t, sess.CanAdvance())

	_, err = f.o.AdvanceToNextDay(ctx, sess)
	require.ErrorIs(t, err, ErrNoActiveJourney)
}

func TestSelectJourney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.start(t, "u1", "jazz")
	f.advance(t, first)
	f.start(t, "u1", "opera")

	sess := NewSession("u1")
	require.NoError(t, f.o.SelectJourney(ctx, sess, first.Journey.ID))
	assert.Equal(t, first.Journey.ID, sess.Journey.ID)
	assert.Equal(t, 2, sess.Topic.Day)

	res := f.advance(t, sess)
	assert.Equal(t, 2, res.Streak)
	assert.Len(t, f.topics(t, first.Journey.ID), 3)
}

func TestSelectJourney_OtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	theirs := f.start(t, "u2", "jazz")

	mine := f.start(t, "u1", "opera")
	before := mine.Journey.ID
	err := f.o.SelectJourney(ctx, mine, theirs.Journey.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, before, mine.Journey.ID, "session untouched")

	err = f.o.SelectJourney(ctx, mine, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHistoryAndDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.start(t, "u1", "jazz")
	f.advance(t, a)
	b := f.start(t, "u1", "opera")
	f.start(t, "u2", "chess")

	history, err := f.o.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, b.Journey.ID, history[0].ID, "newest first")
	assert.Equal(t, a.Journey.ID, history[1].ID)
	assert.Len(t, history[1].TopicIDs, 2)

	days, err := f.o.Days(ctx, a)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 2, days[1].Day)

	_, err = f.o.Days(ctx, NewSession("u1"))
	require.ErrorIs(t, err, ErrNoActiveJourney)
}

func TestLoad_Busy(t *testing.T) {
	f := newFixture(t)
	release, err := f.o.guard.acquire("u1")
	require.NoError(t, err)
	defer release()

	assert.True(t, f.o.Busy("u1"))
	err = f.o.LoadMostRecentJourney(context.Background(), NewSession("u1"))
	require.ErrorIs(t, err, ErrBusy)
}
