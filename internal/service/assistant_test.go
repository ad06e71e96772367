package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librasys/librasys-server/internal/assistant"
	"github.com/librasys/librasys-server/internal/domain"
	"github.com/librasys/librasys-server/internal/service"
)

// mockAssistant records calls and returns a scripted reply.
type mockAssistant struct {
	calls       int
	instruction string
	history     []assistant.Turn
	message     string

	reply string
	err   error
}

func (m *mockAssistant) Generate(_ context.Context, instruction string, history []assistant.Turn, message string) (string, error) {
	m.calls++
	m.instruction = instruction
	m.history = history
	m.message = message
	return m.reply, m.err
}

func TestAssistantTranscript_StartsWithGreeting(t *testing.T) {
	s := setupStore(t)
	svc := service.NewAssistantService(s, &mockAssistant{}, nil)

	transcript, err := svc.Transcript(context.Background(), asClient("alice"))
	require.NoError(t, err)

	require.Len(t, transcript.Messages, 1)
	assert.Equal(t, domain.ChatRoleAssistant, transcript.Messages[0].Role)
	assert.Equal(t, "Hello! I am LibBot. How can I help you navigate the library today?", transcript.Messages[0].Text)

	// A second load returns the same conversation, not a new greeting.
	again, err := svc.Transcript(context.Background(), asClient("alice"))
	require.NoError(t, err)
	assert.Len(t, again.Messages, 1)
}

func TestAssistantAsk_NotConfigured(t *testing.T) {
	s := setupStore(t)
	svc := service.NewAssistantService(s, nil, nil)

	transcript, err := svc.Ask(context.Background(), asClient("alice"), "Do you have Dune?")
	require.NoError(t, err)

	// Greeting, question, canned reply.
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, "Error: API Key is not configured.", transcript.Messages[2].Text)
}

func TestAssistantAsk_BlankQuestion(t *testing.T) {
	s := setupStore(t)
	mock := &mockAssistant{reply: "should not be called"}
	svc := service.NewAssistantService(s, mock, nil)

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := svc.Ask(context.Background(), asClient("alice"), question)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question cannot be empty")
	}

	// Nothing reached the model and nothing was recorded.
	assert.Equal(t, 0, mock.calls)
	transcript, err := svc.Transcript(context.Background(), asClient("alice"))
	require.NoError(t, err)
	assert.Len(t, transcript.Messages, 1)
}

func TestAssistantAsk_UpstreamFailure(t *testing.T) {
	s := setupStore(t)
	mock := &mockAssistant{err: errors.New("connection refused")}
	svc := service.NewAssistantService(s, mock, nil)

	transcript, err := svc.Ask(context.Background(), asClient("alice"), "Hello?")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.calls)
	last := transcript.Messages[len(transcript.Messages)-1]
	assert.Equal(t,
		"I'm having trouble connecting to the library network right now. Please try again later.",
		last.Text)
}

func TestAssistantAsk_Success(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.SeedDefaults(context.Background()))

	mock := &mockAssistant{reply: "Yes, Clean Code is on the shelf."}
	svc := service.NewAssistantService(s, mock, nil)

	ctx := context.Background()
	transcript, err := svc.Ask(ctx, asClient("client"), "Do you have Clean Code?")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, "Do you have Clean Code?", mock.message)

	// The prompt carries the catalog, with unavailable items flagged and
	// authors on the kinds that have them.
	assert.Contains(t, mock.instruction, "The Great Gatsby (book) by F. Scott Fitzgerald")
	assert.Contains(t, mock.instruction, "Dark Side of the Moon (audio) [Unavailable]")
	assert.Contains(t, mock.instruction, "Inception (video)")

	// History holds the greeting only; the new question travels separately.
	require.Len(t, mock.history, 1)
	assert.Equal(t, "model", mock.history[0].Role)

	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, domain.ChatRoleUser, transcript.Messages[1].Role)
	assert.Equal(t, "Yes, Clean Code is on the shelf.", transcript.Messages[2].Text)

	// Follow-up questions carry the grown history.
	_, err = svc.Ask(ctx, asClient("client"), "Who wrote it?")
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
	assert.Len(t, mock.history, 3)
}

func TestAssistantAsk_EmptyReplyFallback(t *testing.T) {
	s := setupStore(t)
	mock := &mockAssistant{reply: "   "}
	svc := service.NewAssistantService(s, mock, nil)

	transcript, err := svc.Ask(context.Background(), asClient("alice"), "Hm?")
	require.NoError(t, err)

	last := transcript.Messages[len(transcript.Messages)-1]
	assert.Equal(t, "I'm sorry, I couldn't generate a response.", last.Text)
}

func TestAssistantTranscripts_PerUser(t *testing.T) {
	s := setupStore(t)
	svc := service.NewAssistantService(s, nil, nil)

	ctx := context.Background()
	_, err := svc.Ask(ctx, asClient("alice"), "hi")
	require.NoError(t, err)

	transcript, err := svc.Transcript(ctx, asClient("bob"))
	require.NoError(t, err)
	assert.Len(t, transcript.Messages, 1, "bob only sees his own greeting")
}
