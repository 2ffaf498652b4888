package reading

import (
	"context"
	"strings"
)

// Input is what reading material is curated for.
type Input struct {
	Topic     string
	Interests []string
}

// Article is one curated resource with an interest-tailored explanation.
type Article struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	Link        string `json:"link"`
}

// Material is the curated reading for a topic. It may hold no articles.
type Material struct {
	Articles []Article `json:"articles"`
}

// Text flattens the material into the plain text a quiz is built from:
// each article's title and explanation on consecutive lines, articles
// separated by a blank line, in order.
func (m *Material) Text() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, len(m.Articles))
	for _, a := range m.Articles {
		parts = append(parts, a.Title+"\n"+a.Explanation)
	}
	return strings.Join(parts, "\n\n")
}

// Curator produces reading material for a topic.
type Curator interface {
	Curate(ctx context.Context, input Input) (*Material, error)
}
