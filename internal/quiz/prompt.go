package quiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert quiz builder, skilled at creating engaging and informative micro-quizzes.`

func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Topic: %s\n\n", input.Topic))

	material := strings.TrimSpace(input.ReadingMaterial)
	if cfg.MaxMaterialChars > 0 && len(material) > cfg.MaxMaterialChars {
		material = material[:cfg.MaxMaterialChars] + "..."
	}
	if material != "" {
		b.WriteString("Reading material:\n")
		b.WriteString(material)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No reading material was found; base the questions on the topic itself.\n\n")
	}

	b.WriteString(fmt.Sprintf("Generate %d multiple-choice questions that test the learner's understanding of the material. ", cfg.Questions))
	b.WriteString("Each question must have 3-5 distinct possible answers with exactly one correct answer. ")
	b.WriteString("\"correctAnswerIndex\" is the 0-based index of the correct answer in \"answers\".\n")
	return b.String()
}
