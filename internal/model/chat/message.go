package chat

import "time"

// Roles a message can carry within a session transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// GreetingID marks the synthesized opening message. It never collides with
// regular IDs, which are positive millisecond ticks.
const GreetingID int64 = -1

// Message persists one half of a conversation turn.
type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// NextID returns an ordering key strictly greater than last. IDs are wall
// clock milliseconds with a monotonic floor, so two appends inside the same
// millisecond still order correctly.
func NextID(last int64) int64 {
	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// NewMessage stamps a message with an ID ordered after last.
func NewMessage(last int64, role, content string) Message {
	return Message{
		ID:        NextID(last),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
