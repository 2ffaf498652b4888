package topics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/openmind/internal/llm"
)

// Validator checks a generated topic. Implementations are stateless and
// safe for concurrent use.
type Validator interface {
	Name() string
	Validate(t *Topic, input Input) *llm.ValidationError
}

// StructuralValidator checks that required fields are present and within
// limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(t *Topic, _ Input) *llm.ValidationError {
	switch {
	case strings.TrimSpace(t.Title) == "":
		return v.fail("topic is empty")
	case len(t.Title) > 200:
		return v.fail("topic exceeds 200 characters")
	case strings.TrimSpace(t.Reason) == "":
		return v.fail("reason is empty")
	case strings.TrimSpace(t.JourneyTitle) == "":
		return v.fail("journeyTitle is empty")
	case t.TotalDays < 1:
		return v.fail("totalDays must be at least 1")
	case t.TotalDays > MaxTotalDays:
		return v.fail(fmt.Sprintf("totalDays exceeds %d", MaxTotalDays))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *llm.ValidationError {
	return &llm.ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

var durationPattern = regexp.MustCompile(`(?i)\b\d+\s*-?\s*(day|days|week|weeks|month|months)\b`)

// TitleValidator rejects new journey titles that mention a duration. The
// title is fixed at creation, so continuing journeys are not checked.
type TitleValidator struct{}

func (v *TitleValidator) Name() string { return "title" }

func (v *TitleValidator) Validate(t *Topic, input Input) *llm.ValidationError {
	if input.Continuing() {
		return nil
	}
	if durationPattern.MatchString(t.JourneyTitle) {
		return &llm.ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("journey title %q mentions a duration", t.JourneyTitle),
			Retryable: true,
		}
	}
	return nil
}
