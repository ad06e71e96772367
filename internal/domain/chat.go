package domain

import "time"

// ChatRole identifies who authored a chat message.
type ChatRole string

const (
	// ChatRoleUser marks a message typed by the account holder.
	ChatRoleUser ChatRole = "user"
	// ChatRoleAssistant marks a message produced by the assistant.
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in an account's assistant transcript.
// Transcripts are append-only; messages are never edited or removed.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the ordered chat history for one account.
type Transcript struct {
	Username string        `json:"username"`
	Messages []ChatMessage `json:"messages"`
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(msg ChatMessage) {
	t.Messages = append(t.Messages, msg)
}
