package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/openmind/internal/journey"
	"github.com/abhisek/openmind/internal/store"
)

const rule = "─"

func printJourneyHeader(w io.Writer, j *store.Journey) {
	fmt.Fprintf(w, "%s\n", j.Title)
	fmt.Fprintf(w, "Journey %s  started %s  interests: %s\n",
		j.ID, j.StartedAt.Local().Format("2006-01-02"), strings.Join(j.Interests, ", "))
}

// printDay renders a day's topic, reading and quiz. Correct answers are
// not shown.
func printDay(w io.Writer, j *store.Journey, t *store.Topic) error {
	material, err := journey.TopicMaterial(t)
	if err != nil {
		return err
	}
	q, err := journey.TopicQuiz(t)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, strings.Repeat(rule, 60))
	fmt.Fprintf(w, "Day %d of %d: %s\n", t.Day, j.TotalDays, t.Title)
	if t.IsLastDay {
		fmt.Fprintln(w, "(final day)")
	}
	fmt.Fprintf(w, "%s\n\n", t.Reason)

	if material != nil && len(material.Articles) > 0 {
		fmt.Fprintln(w, "Reading")
		for i, a := range material.Articles {
			fmt.Fprintf(w, "  %d. %s\n     %s\n     %s\n", i+1, a.Title, a.Explanation, a.Link)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No reading material was found for this topic.")
		fmt.Fprintln(w)
	}

	if q.Len() > 0 {
		fmt.Fprintln(w, "Quiz")
		for i, question := range q.Questions {
			fmt.Fprintf(w, "  Q%d. %s\n", i+1, question.Question)
			for k, a := range question.Answers {
				fmt.Fprintf(w, "      %d) %s\n", k+1, a)
			}
		}
	}
	if t.QuizScore != nil {
		fmt.Fprintf(w, "\nQuiz score: %.2f%%\n", *t.QuizScore)
	}
	return nil
}

func printSession(w io.Writer, sess *journey.Session) error {
	if sess.Journey == nil {
		fmt.Fprintln(w, "No journey yet. Start one with: openmind journey start <interest>...")
		return nil
	}
	printJourneyHeader(w, sess.Journey)
	if sess.Topic == nil {
		return nil
	}
	if err := printDay(w, sess.Journey, sess.Topic); err != nil {
		return err
	}
	fmt.Fprintln(w, strings.Repeat(rule, 60))
	switch sess.Phase() {
	case journey.PhaseCompleted:
		fmt.Fprintln(w, "Journey complete. Start a new one to keep learning.")
	case journey.PhaseActive:
		if sess.Topic.QuizScore == nil {
			fmt.Fprintln(w, "Answer with: openmind quiz submit <answer>... (1-based, one per question)")
		}
		if sess.CanAdvance() {
			fmt.Fprintln(w, "Continue tomorrow with: openmind journey advance")
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
