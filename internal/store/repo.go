package store

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Journey is a persisted multi-day learning plan.
type Journey struct {
	ID        string
	UserID    string
	Title     string
	Interests []string
	TopicIDs  []string
	TotalDays int
	StartedAt time.Time
}

// Topic is one day of a journey. ReadingMaterial and Quiz hold the encoded
// generator output and may be nil.
type Topic struct {
	ID              string
	JourneyID       string
	Day             int
	Title           string
	Reason          string
	IsFirstDay      bool
	IsLastDay       bool
	ReadingMaterial json.RawMessage
	Quiz            json.RawMessage
	QuizScore       *float64
	CreatedAt       time.Time
}

// Profile holds a user's gamification counters.
type Profile struct {
	UserID    string
	Name      string
	Streak    int
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaderboardEntry is a user's standing on the board of one journey title.
// Name is joined from the user's profile at read time.
type LeaderboardEntry struct {
	JourneyTitle string
	UserID       string
	Name         string
	Streak       int
	Points       int
	UpdatedAt    time.Time
}

// Activity event kinds.
const (
	KindJourneyStarted = "journey_started"
	KindDayAdvanced    = "day_advanced"
	KindQuizScored     = "quiz_scored"
)

// ActivityEvent is an append-only record of a progress change.
type ActivityEvent struct {
	Sequence  int64
	Timestamp time.Time
	UserID    string
	Kind      string
	JourneyID string
	TopicID   string
	Detail    string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests under one key (purpose or model).
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
