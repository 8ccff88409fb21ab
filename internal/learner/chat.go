package learner

import "time"

// ChatRole is who wrote a tutor transcript entry.
type ChatRole string

const (
	ChatUser ChatRole = "user"
	ChatBot  ChatRole = "bot"
)

// ChatEntry is one line of the tutor transcript.
type ChatEntry struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
