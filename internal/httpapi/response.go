package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/llm"
	"github.com/abhisek/openmind/internal/store"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func abortError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{journey.ErrBusy, http.StatusConflict, "busy"},
	{journey.ErrStaleSession, http.StatusConflict, "stale_session"},
	{journey.ErrJourneyComplete, http.StatusConflict, "journey_complete"},
	{journey.ErrJourneyEmpty, http.StatusConflict, "journey_empty"},
	{journey.ErrNoActiveJourney, http.StatusConflict, "no_active_journey"},
	{journey.ErrNoQuiz, http.StatusConflict, "no_quiz"},
	{journey.ErrNoInterests, http.StatusBadRequest, "no_interests"},
	{journey.ErrIncompleteAnswers, http.StatusBadRequest, "incomplete_answers"},
	{journey.ErrUnknownSubject, http.StatusNotFound, "unknown_subject"},
	{store.ErrNotFound, http.StatusNotFound, "not_found"},
}

// writeError maps an operation error onto a status and code. Notices
// contribute their user-facing title and description.
func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	body := APIError{Message: err.Error(), Code: code}
	var n *journey.Notice
	if errors.As(err, &n) {
		body.Title = n.Title
		body.Message = n.Description
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}

func classify(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	if isGenerationFailure(err) {
		return http.StatusBadGateway, "generation_failed"
	}
	return http.StatusInternalServerError, "internal"
}

func isGenerationFailure(err error) bool {
	var (
		rateLimit   *llm.ErrRateLimit
		invalid     *llm.ErrInvalidResponse
		unavailable *llm.ErrProviderUnavailable
		maxTokens   *llm.ErrMaxTokensExceeded
		rejected    *llm.ErrRequestRejected
		validation  *llm.ValidationError
	)
	return errors.As(err, &rateLimit) ||
		errors.As(err, &invalid) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &maxTokens) ||
		errors.As(err, &rejected) ||
		errors.As(err, &validation)
}
