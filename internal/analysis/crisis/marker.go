package crisis

import "strings"

// Marker is the sentinel the responder appends, per its safety protocol,
// when it judged the conversation to be a crisis. Case-sensitive.
const Marker = "CRISIS_DETECTED_BY_AI"

// ParseMarker strips a trailing Marker from a raw responder reply. A marker
// anywhere else in the text does not count: only an exact suffix match may
// flag, because a loose substring match would misread quoted or explained
// markers and the cost of a wrong answer here is a missed escalation.
func ParseMarker(raw string) (text string, flagged bool) {
	if !strings.HasSuffix(raw, Marker) {
		return raw, false
	}
	return strings.TrimSpace(strings.TrimSuffix(raw, Marker)), true
}
