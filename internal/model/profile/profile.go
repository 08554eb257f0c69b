package profile

import "time"

// MoodEntry records one mood check-in, rated 1 (very low) to 10 (very high).
type MoodEntry struct {
	Date string `json:"date"` // YYYY-MM-DD
	Mood int    `json:"mood"`
	Note string `json:"note,omitempty"`
}

// JournalEntry records one free-form journal note.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`
}

// Hints carries optional recent wellness context offered to the responder.
type Hints struct {
	RecentMoods   []MoodEntry    `json:"recentMoods,omitempty"`
	RecentJournal []JournalEntry `json:"recentJournal,omitempty"`
}

// Empty reports whether the hints carry nothing worth forwarding.
func (h *Hints) Empty() bool {
	return h == nil || (len(h.RecentMoods) == 0 && len(h.RecentJournal) == 0)
}
