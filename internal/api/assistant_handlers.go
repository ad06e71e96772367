package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/librasys/librasys-server/internal/domain"
)

func (s *Server) registerAssistantRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getAssistantTranscript",
		Method:      http.MethodGet,
		Path:        "/api/v1/assistant/transcript",
		Summary:     "Get chat transcript",
		Description: "Returns the caller's conversation with the assistant, starting a new one if needed",
		Tags:        []string{"Assistant"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTranscript)

	huma.Register(s.api, huma.Operation{
		OperationID: "askAssistant",
		Method:      http.MethodPost,
		Path:        "/api/v1/assistant/ask",
		Summary:     "Ask the assistant",
		Description: "Sends a question to the AI librarian and returns the updated transcript",
		Tags:        []string{"Assistant"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAskAssistant)
}

// === DTOs ===

// ChatMessageResponse contains one chat message in API responses.
type ChatMessageResponse struct {
	ID        string    `json:"id" doc:"Message ID"`
	Role      string    `json:"role" doc:"Author: user or assistant"`
	Text      string    `json:"text" doc:"Message text"`
	Timestamp time.Time `json:"timestamp" doc:"When the message was recorded"`
}

// TranscriptResponse contains a full conversation.
type TranscriptResponse struct {
	Messages []ChatMessageResponse `json:"messages" doc:"Conversation in order"`
}

// TranscriptOutput wraps the transcript for Huma.
type TranscriptOutput struct {
	Body TranscriptResponse
}

// AskRequest is the request body for a question.
type AskRequest struct {
	Question string `json:"question" doc:"Question for the assistant"`
}

// AskInput wraps the question for Huma.
type AskInput struct {
	AuthenticatedInput
	Body AskRequest
}

// === Handlers ===

func (s *Server) handleGetTranscript(ctx context.Context, input *AuthenticatedInput) (*TranscriptOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	transcript, err := s.services.Assistant.Transcript(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &TranscriptOutput{Body: mapTranscriptResponse(transcript)}, nil
}

func (s *Server) handleAskAssistant(ctx context.Context, input *AskInput) (*TranscriptOutput, error) {
	actor, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	transcript, err := s.services.Assistant.Ask(ctx, actor, input.Body.Question)
	if err != nil {
		return nil, err
	}

	return &TranscriptOutput{Body: mapTranscriptResponse(transcript)}, nil
}

func mapTranscriptResponse(transcript *domain.Transcript) TranscriptResponse {
	resp := TranscriptResponse{
		Messages: make([]ChatMessageResponse, 0, len(transcript.Messages)),
	}
	for _, msg := range transcript.Messages {
		resp.Messages = append(resp.Messages, ChatMessageResponse{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}
	return resp
}
