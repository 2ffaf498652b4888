package reading

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/abhisek/openmind/internal/llm"
)

// Validator checks curated material.
type Validator interface {
	Name() string
	Validate(m *Material, input Input) *llm.ValidationError
}

// StructuralValidator checks that every article has a title and an
// explanation. An empty article list is valid.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(m *Material, _ Input) *llm.ValidationError {
	for i, a := range m.Articles {
		if strings.TrimSpace(a.Title) == "" {
			return v.fail(fmt.Sprintf("article %d: title is empty", i))
		}
		if strings.TrimSpace(a.Explanation) == "" {
			return v.fail(fmt.Sprintf("article %d: explanation is empty", i))
		}
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *llm.ValidationError {
	return &llm.ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

// LinkValidator requires every link to be an absolute http or https URL.
type LinkValidator struct{}

func (v *LinkValidator) Name() string { return "link" }

func (v *LinkValidator) Validate(m *Material, _ Input) *llm.ValidationError {
	for i, a := range m.Articles {
		u, err := url.Parse(strings.TrimSpace(a.Link))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &llm.ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("article %d: link %q is not an absolute http(s) URL", i, a.Link),
				Retryable: true,
			}
		}
	}
	return nil
}
