package httpapi

import (
	"time"

	"github.com/abhisek/openmind/internal/gamification"
	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/store"
)

type journeyView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Interests []string  `json:"interests"`
	Days      int       `json:"days"`
	TotalDays int       `json:"totalDays"`
	StartedAt time.Time `json:"startedAt"`
}

// questionView omits the correct answer.
type questionView struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

type topicView struct {
	ID         string            `json:"id"`
	Day        int               `json:"day"`
	Title      string            `json:"topic"`
	Reason     string            `json:"reason"`
	IsFirstDay bool              `json:"isFirstDay"`
	IsLastDay  bool              `json:"isLastDay"`
	Articles   []reading.Article `json:"articles"`
	Quiz       []questionView    `json:"quiz"`
	QuizScore  *float64          `json:"quizScore"`
}

type stateView struct {
	Phase      string       `json:"phase"`
	CanAdvance bool         `json:"canAdvance"`
	Journey    *journeyView `json:"journey"`
	Topic      *topicView   `json:"topic"`
}

type milestoneView struct {
	Streak int    `json:"streak"`
	Tier   string `json:"tier"`
	Reason string `json:"reason"`
}

type rankedEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
	Points int    `json:"points"`
}

type profileView struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
	Points int    `json:"points"`
	Tier   string `json:"tier"`
	// NextMilestone is the streak the user is working toward.
	NextMilestone int `json:"nextMilestone"`
}

func newJourneyView(j *store.Journey) *journeyView {
	if j == nil {
		return nil
	}
	return &journeyView{
		ID:        j.ID,
		Title:     j.Title,
		Interests: j.Interests,
		Days:      len(j.TopicIDs),
		TotalDays: j.TotalDays,
		StartedAt: j.StartedAt,
	}
}

func newTopicView(t *store.Topic) (*topicView, error) {
	if t == nil {
		return nil, nil
	}
	material, err := journey.TopicMaterial(t)
	if err != nil {
		return nil, err
	}
	q, err := journey.TopicQuiz(t)
	if err != nil {
		return nil, err
	}

	v := &topicView{
		ID:         t.ID,
		Day:        t.Day,
		Title:      t.Title,
		Reason:     t.Reason,
		IsFirstDay: t.IsFirstDay,
		IsLastDay:  t.IsLastDay,
		Articles:   []reading.Article{},
		Quiz:       []questionView{},
		QuizScore:  t.QuizScore,
	}
	if material != nil {
		v.Articles = material.Articles
	}
	if q != nil {
		for _, qq := range q.Questions {
			v.Quiz = append(v.Quiz, questionView{Question: qq.Question, Answers: qq.Answers})
		}
	}
	return v, nil
}

func newStateView(sess *journey.Session) (*stateView, error) {
	tv, err := newTopicView(sess.Topic)
	if err != nil {
		return nil, err
	}
	return &stateView{
		Phase:      sess.Phase().String(),
		CanAdvance: sess.CanAdvance(),
		Journey:    newJourneyView(sess.Journey),
		Topic:      tv,
	}, nil
}

func newMilestoneView(m *gamification.Milestone) *milestoneView {
	if m == nil {
		return nil
	}
	return &milestoneView{Streak: m.Streak, Tier: string(m.Tier), Reason: m.Reason}
}

func newProfileView(p *store.Profile) profileView {
	return profileView{
		UserID:        p.UserID,
		Name:          p.Name,
		Streak:        p.Streak,
		Points:        p.Points,
		Tier:          string(gamification.StreakTier(p.Streak)),
		NextMilestone: gamification.NextStreakThreshold(p.Streak),
	}
}
