// Package journey drives the lifecycle of a learning journey: generate the
// day's topic, curate reading, build the quiz, persist everything in one
// transaction, advance day by day and record quiz scores.
package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/abhisek/openmind/internal/quiz"
	"github.com/abhisek/openmind/internal/reading"
	"github.com/abhisek/openmind/internal/store"
	"github.com/abhisek/openmind/internal/topics"
)

const tracerName = "github.com/abhisek/openmind/internal/journey"

// Orchestrator sequences the generators and the store. It is safe for
// concurrent use by multiple sessions.
type Orchestrator struct {
	store   *store.Store
	topics  topics.Generator
	reading reading.Curator
	quizzes quiz.Builder

	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string

	guard  *guard
	writes *writeQueue
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithIDGenerator overrides the journey and topic id source.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) { o.newID = newID }
}

// New creates an Orchestrator.
func New(st *store.Store, tg topics.Generator, rc reading.Curator, qb quiz.Builder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:   st,
		topics:  tg,
		reading: rc,
		quizzes: qb,
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
		newID:   uuid.NewString,
		guard:   newGuard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.writes = newWriteQueue(o.logger)
	return o
}

// Busy reports whether a journey operation is in flight for the user.
func (o *Orchestrator) Busy(userID string) bool {
	return o.guard.isBusy(userID)
}

// Close waits for outstanding quiz score writes.
func (o *Orchestrator) Close() {
	o.writes.wait()
}

// History returns every journey of the user, newest first.
func (o *Orchestrator) History(ctx context.Context, userID string) ([]store.Journey, error) {
	return o.store.Journeys().ListByUser(ctx, userID)
}

// Days returns all topics of the session's journey in day order.
func (o *Orchestrator) Days(ctx context.Context, sess *Session) ([]store.Topic, error) {
	if sess.Journey == nil {
		return nil, ErrNoActiveJourney
	}
	return o.store.Topics().ListByJourney(ctx, sess.Journey.ID)
}

func (o *Orchestrator) startSpan(ctx context.Context, name string, sess *Session) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("user.id", sess.UserID)}
	if sess.Journey != nil {
		attrs = append(attrs, attribute.String("journey.id", sess.Journey.ID))
	}
	return o.tracer.Start(ctx, "journey."+name, trace.WithAttributes(attrs...))
}

// finish ends the span and converts a failure into a Notice.
func (o *Orchestrator) finish(span trace.Span, sess *Session, text noticeText, err error) error {
	defer span.End()
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	fields := []zap.Field{zap.String("user_id", sess.UserID), zap.Error(err)}
	if IsPrecondition(err) {
		o.logger.Info(strings.ToLower(text.title), fields...)
	} else {
		o.logger.Error(strings.ToLower(text.title), fields...)
	}
	return newNotice(text, err)
}

// day is the generated content of one topic.
type day struct {
	topic    *topics.Topic
	material *reading.Material
	quiz     *quiz.Quiz
}

// generateDay runs topic generation, curation and quiz building in order.
// Each step needs the previous step's output.
func (o *Orchestrator) generateDay(ctx context.Context, in topics.Input) (*day, error) {
	ctx, span := o.tracer.Start(ctx, "journey.generateDay")
	defer span.End()

	t, err := o.topics.Generate(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generate topic: %w", err)
	}
	span.SetAttributes(attribute.String("topic.title", t.Title))

	m, err := o.reading.Curate(ctx, reading.Input{Topic: t.Title, Interests: in.Interests})
	if err != nil {
		return nil, fmt.Errorf("curate reading: %w", err)
	}
	if m == nil {
		m = &reading.Material{Articles: []reading.Article{}}
	}

	q, err := o.quizzes.Build(ctx, quiz.Input{Topic: t.Title, ReadingMaterial: m.Text()})
	if err != nil {
		return nil, fmt.Errorf("build quiz: %w", err)
	}
	return &day{topic: t, material: m, quiz: q}, nil
}

// record assembles the topic row for generated content.
func (o *Orchestrator) record(d *day, id, journeyID string, dayNum int, now time.Time) (*store.Topic, error) {
	material, err := jsonRaw(d.material)
	if err != nil {
		return nil, fmt.Errorf("encode reading material: %w", err)
	}
	q, err := jsonRaw(d.quiz)
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return &store.Topic{
		ID:              id,
		JourneyID:       journeyID,
		Day:             dayNum,
		Title:           d.topic.Title,
		Reason:          d.topic.Reason,
		IsFirstDay:      dayNum == 1,
		IsLastDay:       d.topic.IsLastDay || dayNum >= topics.MaxTotalDays,
		ReadingMaterial: material,
		Quiz:            q,
		CreatedAt:       now,
	}, nil
}

// cleanInterests trims entries and drops blanks and duplicates.
func cleanInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func jsonRaw[T any](v *T) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
