package crisis

import "strings"

// Keywords flag a possible crisis when any of them occurs as a substring of
// the lower-cased user input. The table is data: swapping it changes the
// detector's behavior without touching code.
var Keywords = []string{
	"suicidal",
	"suicide",
	"kill myself",
	"end it all",
	"want to die",
	"hurt myself",
}

// Detect reports whether text trips the local keyword heuristics. It is pure
// and synchronous so detection is never delayed behind a network call.
func Detect(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, keyword := range Keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
