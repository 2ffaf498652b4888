// Package offline answers generator requests without a model. The mock
// LLM provider uses it for demos and end-to-end tests, so a journey can be
// started and advanced with no API key.
package offline

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/topics"
)

// DefaultTopics is the rotation of topic titles handed out day by day.
var DefaultTopics = []string{
	"Event Horizons",
	"Stellar Nurseries",
	"Dark Matter Maps",
	"Pulsar Timing",
	"Exoplanet Atmospheres",
	"Gravitational Waves",
	"The Cosmic Microwave Background",
}

// Responder produces schema-valid content keyed on the request's schema
// name. Topics are handed out in order; reading and quizzes refer to the
// most recent topic. Every quiz has correct answers 1, 0 and 2.
type Responder struct {
	JourneyTitle string
	TotalDays    int
	Topics       []string

	mu    sync.Mutex
	calls int
	topic string
}

// New returns a Responder for a seven day "Cosmic Curiosities" journey.
func New() *Responder {
	return &Responder{
		JourneyTitle: "Cosmic Curiosities",
		TotalDays:    7,
		Topics:       DefaultTopics,
	}
}

// Provider returns a mock provider answered entirely by r.
func (r *Responder) Provider() *llm.MockProvider {
	p := llm.NewMockProvider()
	p.Fallback = r.Respond
	return p
}

// Seek makes the next topic the one for day (1-based). Callers resuming a
// journey in a new process use it to continue the rotation.
func (r *Responder) Seek(day int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = max(day-1, 0)
}

// Respond answers one request. Unknown schemas get an empty object.
func (r *Responder) Respond(req llm.Request) llm.MockResponse {
	name := ""
	if req.Schema != nil {
		name = req.Schema.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch name {
	case topics.TopicSchema.Name:
		r.topic = r.Topics[r.calls%len(r.Topics)]
		r.calls++
		return llm.MockJSON(topics.Topic{
			Title:        r.topic,
			Reason:       fmt.Sprintf("%s builds on what you explored so far.", r.topic),
			JourneyTitle: r.JourneyTitle,
			TotalDays:    r.TotalDays,
		})
	case reading.MaterialSchema.Name:
		return llm.MockJSON(reading.Material{Articles: []reading.Article{
			{
				Title:       r.topic + " in plain words",
				Explanation: "Picture a river flowing toward a waterfall: past a certain point nothing can swim back.",
				Link:        "https://en.wikipedia.org/wiki/Special:Search?search=" + url.QueryEscape(r.topic),
			},
			{
				Title:       "Why " + r.topic + " matters",
				Explanation: "Think of it as a lighthouse: it tells astronomers where to look next.",
				Link:        "https://www.nasa.gov/search/?q=" + url.QueryEscape(r.topic),
			},
		}})
	case quiz.QuizSchema.Name:
		return llm.MockJSON(quiz.Quiz{Questions: []quiz.Question{
			{
				Question:           fmt.Sprintf("Which picture best describes %s?", r.topic),
				Answers:            []string{"A still pond", "A river before a waterfall", "A frozen lake"},
				CorrectAnswerIndex: 1,
			},
			{
				Question:           "What role does the lighthouse play in the second article?",
				Answers:            []string{"It shows where to look next", "It stores energy", "It blocks light"},
				CorrectAnswerIndex: 0,
			},
			{
				Question:           "Which of these is studied by astronomers?",
				Answers:            []string{"Tectonic plates", "Ocean tides only", "Distant galaxies"},
				CorrectAnswerIndex: 2,
			},
		}})
	default:
		return llm.MockJSON(map[string]any{})
	}
}
