package reading

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an AI learning companion that excels at making complex topics understandable and engaging.`

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n", input.Topic))
	if len(input.Interests) > 0 {
		b.WriteString("User interests:\n")
		for _, interest := range input.Interests {
			b.WriteString(fmt.Sprintf("- %s\n", interest))
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Find up to %d relevant articles or resources for this topic. ", cfg.Articles))
	b.WriteString("For each one, analyze its core concept and explain it with a creative analogy based on the user's interests.\n\n")
	b.WriteString("For each resource provide:\n")
	b.WriteString("1. A title.\n")
	b.WriteString("2. An \"explanation\" that simplifies the main idea with an analogy related to their interests.\n")
	b.WriteString("3. A valid absolute URL in \"link\".\n")
	return b.String()
}
