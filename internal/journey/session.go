package journey

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/store"
)

// Session is the explicit per-user state the orchestrator operates on.
// A Session is not safe for concurrent use; each caller owns its own.
type Session struct {
	UserID    string
	Interests []string

	Journey *store.Journey
	Topic   *store.Topic
}

// NewSession returns an empty session for the user.
func NewSession(userID string) *Session {
	return &Session{UserID: userID}
}

// Phase is the journey state observed through the active topic.
type Phase int

const (
	PhaseNoJourney Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNoJourney:
		return "no-journey"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Phase reports where the session is in the journey lifecycle. A journey
// is completed once its last day has a recorded quiz score.
func (s *Session) Phase() Phase {
	if s.Journey == nil || s.Topic == nil {
		return PhaseNoJourney
	}
	if s.Topic.IsLastDay && s.Topic.QuizScore != nil {
		return PhaseCompleted
	}
	return PhaseActive
}

// CanAdvance reports whether AdvanceToNextDay would pass its preconditions.
func (s *Session) CanAdvance() bool {
	return s.Journey != nil && s.Topic != nil && !s.Topic.IsLastDay
}

func (s *Session) clear() {
	s.Journey = nil
	s.Topic = nil
}

// TopicMaterial decodes the reading material stored on a topic. A topic
// without material yields an empty Material.
func TopicMaterial(t *store.Topic) (*reading.Material, error) {
	m := &reading.Material{Articles: []reading.Article{}}
	if t == nil || len(t.ReadingMaterial) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(t.ReadingMaterial, m); err != nil {
		return nil, fmt.Errorf("decode reading material of topic %s: %w", t.ID, err)
	}
	return m, nil
}

// TopicQuiz decodes the quiz stored on a topic, or returns nil if it has
// none.
func TopicQuiz(t *store.Topic) (*quiz.Quiz, error) {
	if t == nil || len(t.Quiz) == 0 {
		return nil, nil
	}
	var q quiz.Quiz
	if err := json.Unmarshal(t.Quiz, &q); err != nil {
		return nil, fmt.Errorf("decode quiz of topic %s: %w", t.ID, err)
	}
	return &q, nil
}
