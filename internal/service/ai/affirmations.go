package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/afyasync/afyasync/backend/internal/model/profile"
)

// fallbackAffirmations are returned when the model yields nothing usable.
var fallbackAffirmations = []string{
	"You are capable and strong.",
	"Today is a new opportunity.",
	"Be kind to yourself.",
}

// Affirmations generates 3-5 short personalized affirmations in the
// requested language from the user's recent wellness records. A failed or
// empty generation falls back to a fixed list rather than an error.
func (s *Service) Affirmations(ctx context.Context, language string, hints *profile.Hints) []string {
	input := map[string]any{
		"system":  buildAffirmationPrompt(language, hints),
		"history": []any(nil),
		"query":   "Please generate the affirmations now.",
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return fallbackAffirmations
	}

	affirmations := parseAffirmations(response.Content)
	if len(affirmations) == 0 {
		return fallbackAffirmations
	}
	return affirmations
}

func buildAffirmationPrompt(language string, hints *profile.Hints) string {
	var builder strings.Builder

	builder.WriteString("You are a compassionate and insightful AI companion. Generate 3 to 5 short, positive, and uplifting daily affirmations for the user, one per line, with no numbering or bullets. ")
	builder.WriteString(fmt.Sprintf("Write them in the language with code %q. ", language))
	builder.WriteString("Focus on resilience, self-compassion, hope, and strength. If no personal context is provided, generate general positive affirmations.")

	if !hints.Empty() {
		builder.WriteString("\n\nRecent data shared by the user:")
		for _, mood := range hints.RecentMoods {
			builder.WriteString(fmt.Sprintf("\n- On %s, mood was %d/10.", mood.Date, mood.Mood))
			if mood.Note != "" {
				builder.WriteString(fmt.Sprintf(" Note: %s", mood.Note))
			}
		}
		for _, entry := range hints.RecentJournal {
			builder.WriteString(fmt.Sprintf("\n- Journal entry from %s: %q", entry.Date, entry.Content))
		}
	}

	return builder.String()
}

func parseAffirmations(content string) []string {
	lines := strings.Split(content, "\n")
	affirmations := make([]string, 0, 5)
	for _, line := range lines {
		cleaned := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. "))
		if cleaned == "" {
			continue
		}
		affirmations = append(affirmations, cleaned)
		if len(affirmations) == 5 {
			break
		}
	}
	return affirmations
}
