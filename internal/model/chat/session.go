package chat

// Session is the ordered transcript owned by one identity.
type Session struct {
	Identity string    `json:"identity"`
	Messages []Message `json:"messages"`
}

// LastID returns the highest message ID in the session, or zero when the
// session only holds the synthesized greeting.
func (s Session) LastID() int64 {
	last := int64(0)
	for _, msg := range s.Messages {
		if msg.ID > last {
			last = msg.ID
		}
	}
	return last
}
