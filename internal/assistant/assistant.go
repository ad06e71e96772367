// Package assistant provides the AI librarian backing the chat feature.
// The Client interface keeps the transport swappable so services and tests
// never talk to the real API directly.
package assistant

import "context"

// Turn is one prior exchange in a conversation, in the order it happened.
type Turn struct {
	Role string // "user" or "model"
	Text string
}

// Client generates assistant replies.
type Client interface {
	// Generate produces a reply to message, given the system instruction and
	// prior conversation turns.
	Generate(ctx context.Context, systemInstruction string, history []Turn, message string) (string, error)
}
