package offline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/topics"
)

func TestResponder_DrivesRealGenerators(t *testing.T) {
	ctx := context.Background()
	p := New().Provider()

	topic, err := topics.New(p, topics.DefaultConfig()).Generate(ctx, topics.Input{Interests: []string{"astrophysics"}})
	require.NoError(t, err)
	assert.Equal(t, "Event Horizons", topic.Title)
	assert.Equal(t, "Cosmic Curiosities", topic.JourneyTitle)
	assert.Equal(t, 7, topic.TotalDays)
	assert.True(t, topic.IsFirstDay)

	material, err := reading.New(p, reading.DefaultConfig()).Curate(ctx, reading.Input{Topic: topic.Title, Interests: []string{"astrophysics"}})
	require.NoError(t, err)
	require.Len(t, material.Articles, 2)
	assert.Contains(t, material.Articles[0].Title, "Event Horizons")
	assert.Contains(t, material.Articles[0].Link, "Event+Horizons")

	q, err := quiz.New(p, quiz.DefaultConfig()).Build(ctx, quiz.Input{Topic: topic.Title, ReadingMaterial: material.Text()})
	require.NoError(t, err)
	res, err := quiz.Score(q, []int{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)

	next, err := topics.New(p, topics.DefaultConfig()).Generate(ctx, topics.Input{
		Interests:    []string{"astrophysics"},
		JourneyTitle: topic.JourneyTitle,
		TotalDays:    topic.TotalDays,
	})
	require.NoError(t, err)
	assert.Equal(t, "Stellar Nurseries", next.Title)
	assert.False(t, next.IsFirstDay)
	assert.Equal(t, 4, p.CallCount())
}

func TestResponder_UnknownSchema(t *testing.T) {
	resp := New().Respond(llm.Request{})
	assert.JSONEq(t, `{}`, string(resp.Content))
}

func TestResponder_Seek(t *testing.T) {
	r := New()
	r.Seek(3)
	p := r.Provider()
	topic, err := topics.New(p, topics.DefaultConfig()).Generate(context.Background(), topics.Input{Interests: []string{"space"}})
	require.NoError(t, err)
	assert.Equal(t, "Dark Matter Maps", topic.Title)
}
