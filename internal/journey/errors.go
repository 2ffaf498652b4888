package journey

import (
	"errors"
	"fmt"

	"github.com/abhisek/openmind/internal/quiz"
)

// Precondition failures. Operations that return them leave the session and
// the store untouched.
var (
	ErrBusy              = errors.New("another journey operation is in progress")
	ErrNoInterests       = errors.New("at least one interest is required")
	ErrNoActiveJourney   = errors.New("no active journey")
	ErrJourneyComplete   = errors.New("journey is complete")
	ErrJourneyEmpty      = errors.New("journey has no topics")
	ErrNoQuiz            = errors.New("topic has no quiz")
	ErrStaleSession      = errors.New("journey was advanced by another session")
	ErrUnknownSubject    = errors.New("unknown catalog subject")
	ErrIncompleteAnswers = quiz.ErrIncompleteAnswers
)

// Notice is the user-facing form of an operation failure. It wraps the
// underlying cause, so errors.Is and errors.As see through it.
type Notice struct {
	Title       string
	Description string
	Err         error
}

func (n *Notice) Error() string {
	return fmt.Sprintf("%s: %v", n.Title, n.Err)
}

func (n *Notice) Unwrap() error { return n.Err }

// noticeText is the fallback title and description for one operation.
type noticeText struct {
	title       string
	description string
}

var (
	noticeStart = noticeText{
		"Journey Creation Failed",
		"There was an error creating your new learning journey. Please try again.",
	}
	noticeAdvance = noticeText{
		"Progression Failed",
		"There was an error advancing to the next day. Please try again.",
	}
	noticeQuiz = noticeText{
		"Quiz Submission Failed",
		"Your answers could not be scored. Please try again.",
	}
	noticeLoad = noticeText{
		"Could Not Load Journey",
		"There was an error loading your learning journey. Please try again.",
	}
)

var preconditionDescriptions = []struct {
	err         error
	description string
}{
	{ErrBusy, "Another update is already in progress. Please wait for it to finish."},
	{ErrNoInterests, "Add at least one interest to start a journey."},
	{ErrNoActiveJourney, "Start or select a journey first."},
	{ErrJourneyComplete, "This journey is complete. Start a new one to keep learning."},
	{ErrJourneyEmpty, "This journey has no content yet. Start a new journey."},
	{ErrNoQuiz, "This day has no quiz."},
	{ErrStaleSession, "This journey changed in another session. Reload it and try again."},
	{ErrUnknownSubject, "That course could not be found."},
	{ErrIncompleteAnswers, "Answer every question before submitting."},
}

func newNotice(text noticeText, err error) *Notice {
	n := &Notice{Title: text.title, Description: text.description, Err: err}
	for _, p := range preconditionDescriptions {
		if errors.Is(err, p.err) {
			n.Description = p.description
			break
		}
	}
	return n
}

// IsPrecondition reports whether err is a precondition failure rather than
// a generation or persistence failure.
func IsPrecondition(err error) bool {
	for _, p := range preconditionDescriptions {
		if errors.Is(err, p.err) {
			return true
		}
	}
	return false
}
