package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/librasys/librasys-server/internal/assistant"
	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
	"github.com/librasys/librasys-server/internal/id"
	"github.com/librasys/librasys-server/internal/store"
)

// Canned assistant responses. Configuration and upstream failures degrade to
// fixed messages instead of surfacing errors to the chat window.
const (
	msgNotConfigured = "Error: API Key is not configured."
	msgUnavailable   = "I'm having trouble connecting to the library network right now. Please try again later."
	msgEmptyReply    = "I'm sorry, I couldn't generate a response."
	msgGreeting      = "Hello! I am LibBot. How can I help you navigate the library today?"
)

// AssistantService runs the LibBot chat. The client is nil when no API key
// is configured; in that mode Ask answers with a fixed message and makes no
// network calls.
type AssistantService struct {
	store  *store.Store
	client assistant.Client
	logger *slog.Logger
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(store *store.Store, client assistant.Client, logger *slog.Logger) *AssistantService {
	return &AssistantService{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Transcript returns the user's conversation, starting a new one with the
// greeting when none exists yet.
func (s *AssistantService) Transcript(ctx context.Context, actor Actor) (*domain.Transcript, error) {
	transcript, err := s.store.GetTranscript(ctx, actor.Username)
	if err == nil {
		return transcript, nil
	}
	if !errors.Is(err, store.ErrTranscriptNotFound) {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	transcript = &domain.Transcript{Username: actor.Username}
	greeting, err := s.newMessage(domain.ChatRoleAssistant, msgGreeting)
	if err != nil {
		return nil, err
	}
	transcript.Append(*greeting)

	if err := s.store.SaveTranscript(ctx, transcript); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	return transcript, nil
}

// Ask sends a question to the assistant and returns the updated transcript.
// The question and the reply are both recorded, including canned replies, so
// the conversation the user saw is the conversation on disk.
func (s *AssistantService) Ask(ctx context.Context, actor Actor, question string) (*domain.Transcript, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domainerrors.Validation("question cannot be empty")
	}

	transcript, err := s.Transcript(ctx, actor)
	if err != nil {
		return nil, err
	}

	// History for the model, captured before the new question is appended.
	history := make([]assistant.Turn, 0, len(transcript.Messages))
	for _, msg := range transcript.Messages {
		role := "user"
		if msg.Role == domain.ChatRoleAssistant {
			role = "model"
		}
		history = append(history, assistant.Turn{Role: role, Text: msg.Text})
	}

	userMsg, err := s.newMessage(domain.ChatRoleUser, question)
	if err != nil {
		return nil, err
	}
	transcript.Append(*userMsg)

	reply := s.generateReply(ctx, history, question)

	assistantMsg, err := s.newMessage(domain.ChatRoleAssistant, reply)
	if err != nil {
		return nil, err
	}
	transcript.Append(*assistantMsg)

	if err := s.store.SaveTranscript(ctx, transcript); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	return transcript, nil
}

// generateReply produces the assistant's answer, degrading to fixed messages
// when the assistant is unconfigured or unreachable.
func (s *AssistantService) generateReply(ctx context.Context, history []assistant.Turn, question string) string {
	if s.client == nil {
		return msgNotConfigured
	}

	instruction, err := s.systemInstruction(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to build catalog summary for assistant", "error", err)
		}
		return msgUnavailable
	}

	reply, err := s.client.Generate(ctx, instruction, history, question)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Assistant request failed", "error", err)
		}
		return msgUnavailable
	}
	if strings.TrimSpace(reply) == "" {
		return msgEmptyReply
	}

	return reply
}

// systemInstruction renders the LibBot prompt around the current catalog.
func (s *AssistantService) systemInstruction(ctx context.Context) (string, error) {
	var summary strings.Builder
	for media, err := range s.store.ListMedia(ctx) {
		if err != nil {
			return "", fmt.Errorf("list media: %w", err)
		}

		line := fmt.Sprintf("%s (%s)", media.Title, media.Kind)
		if !media.Available {
			line += " [Unavailable]"
		}
		if author, ok := media.Author(); ok {
			line += " by " + author
		}
		summary.WriteString(line)
		summary.WriteString("\n")
	}

	return fmt.Sprintf(`You are LibBot, a helpful and knowledgeable AI Librarian for "LibraSys".

Here is the current library catalog:
---
%s---

Rules:
1. Answer questions about the catalog (availability, authors, types).
2. If a user asks for a recommendation, use your general knowledge combined with the catalog to suggest items we actually have.
3. Be polite and concise.
4. If the user asks about a book we don't have, politely inform them.`, summary.String()), nil
}

func (s *AssistantService) newMessage(role domain.ChatRole, text string) (*domain.ChatMessage, error) {
	msgID, err := id.Generate("msg")
	if err != nil {
		return nil, fmt.Errorf("generate message ID: %w", err)
	}

	return &domain.ChatMessage{
		ID:        msgID,
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}, nil
}
