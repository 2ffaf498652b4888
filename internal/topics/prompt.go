package topics

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an AI learning companion. You are great at creating structured, yet engaging learning journeys that build on what the learner already cares about.`

func buildUserMessage(input Input) string {
	var b strings.Builder

	b.WriteString("User interests:\n")
	for _, interest := range input.Interests {
		b.WriteString(fmt.Sprintf("- %s\n", interest))
	}
	b.WriteString("\n")

	if input.Continuing() {
		b.WriteString(fmt.Sprintf("The user is continuing their learning journey on %q.\n", input.JourneyTitle))
		b.WriteString("Generate the next logical topic in this journey. It should build on previous knowledge but be digestible in a single day.\n")
		b.WriteString("Set \"isFirstDay\" to false. If this topic concludes the journey, set \"isLastDay\" to true.\n")
		if input.TotalDays > 0 {
			b.WriteString(fmt.Sprintf("The journey was planned for %d days; keep \"totalDays\" consistent with that unless more days are clearly needed.\n", input.TotalDays))
		}
		b.WriteString(fmt.Sprintf("Repeat the journey title exactly as %q.\n", input.JourneyTitle))
		return b.String()
	}

	b.WriteString("This is the start of a new journey.\n")
	b.WriteString("First decide a realistic length for it. A simple subject might take 7-10 days, a complex one such as data structures 30 or more")
	b.WriteString(fmt.Sprintf(" (never more than %d).\n", MaxTotalDays))
	b.WriteString("Then create a broad, engaging title for the journey. The title must not mention a duration (no \"in X days\").\n")
	b.WriteString("Finally generate the topic for day 1. Set \"isFirstDay\" to true and \"isLastDay\" to false unless the journey lasts a single day.\n")
	return b.String()
}
