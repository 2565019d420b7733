package impl

import (
	"context"
	"testing"
	"time"

	"unione/internal/domain/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistant() *assistantService {
	return NewAssistantService(0, newDiscardLogger()).(*assistantService)
}

func TestAssistantService_ArchiveRules(t *testing.T) {
	svc := newAssistant()
	ctx := context.Background()

	reply, err := svc.Ask(ctx, "How do I upload a paper?", constants.AssistantContextArchive)
	require.NoError(t, err)
	assert.Equal(t, `To upload a new PYQ, fill out the upload form with the title, subject, year, and semester information, then select the PDF file and click "Upload PYQ". Make sure the file is a valid PDF.`, reply)

	reply, err = svc.Ask(ctx, "Where can I download old exams?", constants.AssistantContextArchive)
	require.NoError(t, err)
	assert.Contains(t, reply, "Download")

	reply, err = svc.Ask(ctx, "Which subjects are covered?", constants.AssistantContextArchive)
	require.NoError(t, err)
	assert.Contains(t, reply, "organized by subject")
}

func TestAssistantService_NotesRules(t *testing.T) {
	svc := newAssistant()
	ctx := context.Background()

	reply, err := svc.Ask(ctx, "How do I study with the notes?", constants.AssistantContextNotes)
	require.NoError(t, err)
	assert.Contains(t, reply, "embedded viewer")

	reply, err = svc.Ask(ctx, "Can you explain a concept?", constants.AssistantContextNotes)
	require.NoError(t, err)
	assert.Contains(t, reply, "explain concepts")
}

func TestAssistantService_ContextScopesRules(t *testing.T) {
	svc := newAssistant()

	// Archive keywords do not trigger inside the notes context
	reply, err := svc.Ask(context.Background(), "upload something", constants.AssistantContextNotes)
	require.NoError(t, err)
	assert.NotContains(t, reply, "Upload PYQ")
}

func TestAssistantService_GeneralRules(t *testing.T) {
	svc := newAssistant()
	ctx := context.Background()

	reply, err := svc.Ask(ctx, "hello there", constants.AssistantContextArchive)
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I assist you with your studies today?", reply)

	reply, err = svc.Ask(ctx, "I need help", constants.AssistantContextNotes)
	require.NoError(t, err)
	assert.Contains(t, reply, "smart notes")
	assert.Contains(t, reply, "What would you like to know?")
}

func TestAssistantService_FallbackEchoesQuestion(t *testing.T) {
	svc := newAssistant()

	reply, err := svc.Ask(context.Background(), "What is the meaning of life?", constants.AssistantContextArchive)
	require.NoError(t, err)
	assert.Contains(t, reply, `"What is the meaning of life?"`)
	assert.Contains(t, reply, "previous year question papers")
}

func TestAssistantService_Greeting(t *testing.T) {
	svc := newAssistant()

	greeting := svc.Greeting(constants.AssistantContextNotes)
	assert.Equal(t, "Hello! I'm your AI study assistant. I can help you with questions about smart notes. Ask me anything!", greeting)
}

func TestAssistantService_DelayHonorsCancellation(t *testing.T) {
	svc := NewAssistantService(time.Minute, newDiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ask(ctx, "hello", constants.AssistantContextArchive)
	assert.ErrorIs(t, err, context.Canceled)
}
