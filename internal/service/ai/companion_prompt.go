package ai

import (
	"fmt"
	"strings"

	"github.com/afyasync/afyasync/backend/internal/analysis/crisis"
	"github.com/afyasync/afyasync/backend/internal/model/profile"
)

var languageNames = map[string]string{
	"en":  "English",
	"lg":  "Luganda",
	"sw":  "Swahili",
	"run": "Runyakitara",
}

// BuildSystemPrompt assembles the companion persona, the in-band safety
// protocol and any wellness hints into the system message for one turn.
func BuildSystemPrompt(language string, hints *profile.Hints) string {
	var builder strings.Builder

	builder.WriteString("You are MindMate, a compassionate, empathetic, and non-judgmental mental health companion. ")
	builder.WriteString("Respond in a supportive and understanding way. Offer gentle guidance, a listening ear, or suggest helpful coping strategies if appropriate. ")
	builder.WriteString("Keep your responses concise, natural, and helpful.")

	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(language))]; ok && name != "English" {
		builder.WriteString(fmt.Sprintf("\n\nRespond in %s (language code %q).", name, language))
	}

	if !hints.Empty() {
		builder.WriteString("\n\nRecent context shared by the user:")
		for _, mood := range hints.RecentMoods {
			builder.WriteString(fmt.Sprintf("\n- On %s their mood was %d/10.", mood.Date, mood.Mood))
			if mood.Note != "" {
				builder.WriteString(fmt.Sprintf(" Note: %s", mood.Note))
			}
		}
		for _, entry := range hints.RecentJournal {
			builder.WriteString(fmt.Sprintf("\n- Journal entry from %s: %q", entry.Date, entry.Content))
		}
		builder.WriteString("\nUse this context gently; never quote it back verbatim.")
	}

	builder.WriteString("\n\nVERY IMPORTANT SAFETY PROTOCOL:\n")
	builder.WriteString("If the user's message contains any themes of suicide, self-harm, immediate danger to themselves or others, or indicates a severe mental health crisis:\n")
	builder.WriteString("1. Your primary goal is to gently guide them to seek immediate professional help or use an emergency hotline.\n")
	builder.WriteString(fmt.Sprintf("2. Your response MUST end with the exact string %q. Do not add any text or punctuation after this marker.\n", crisis.Marker))
	builder.WriteString("\nRemember to always be empathetic and prioritize safety.")

	return builder.String()
}
