package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"unione/internal/domain/constants"
	"unione/internal/usecase"

	"github.com/pkg/errors"
)

type assistantService struct {
	responseDelay time.Duration
	logger        *slog.Logger
}

// NewAssistantService creates a new scripted assistant instance. The delay
// paces replies like a remote model would; a zero delay answers immediately.
func NewAssistantService(responseDelay time.Duration, logger *slog.Logger) usecase.AssistantUsecase {
	return &assistantService{
		responseDelay: responseDelay,
		logger:        logger,
	}
}

// Ask answers a question by keyword rules. Rules are checked in order:
// context-specific first, then general, then the fallback.
func (s *assistantService) Ask(ctx context.Context, question, contextLabel string) (string, error) {
	if s.responseDelay > 0 {
		select {
		case <-time.After(s.responseDelay):
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "assistant reply cancelled")
		}
	}

	reply := s.reply(question, contextLabel)
	s.logger.Debug("Assistant replied",
		slog.String("context", contextLabel),
		slog.Int("question_length", len(question)),
	)

	return reply, nil
}

func (s *assistantService) reply(question, contextLabel string) string {
	lower := strings.ToLower(question)

	if contextLabel == constants.AssistantContextArchive {
		if strings.Contains(lower, "download") || strings.Contains(lower, "access") {
			return `To download PYQs, click on any PYQ card and use the "Download" button. All files are stored securely in PDF format. If you need a specific subject or year, use the search bar to filter results.`
		}
		if strings.Contains(lower, "upload") || strings.Contains(lower, "add") {
			return `To upload a new PYQ, fill out the upload form with the title, subject, year, and semester information, then select the PDF file and click "Upload PYQ". Make sure the file is a valid PDF.`
		}
		if strings.Contains(lower, "subject") || strings.Contains(lower, "topic") {
			return "PYQs are organized by subject, year, and semester. You can search by any of these criteria using the search bar. Common subjects include Data Structures, Algorithms, Database Systems, and more."
		}
	}

	if contextLabel == constants.AssistantContextNotes {
		if strings.Contains(lower, "notes") || strings.Contains(lower, "study") {
			return "Smart Notes are interactive study materials available in the embedded viewer. You can navigate through pages using the controls. For specific topics or concepts, let me know what you need help with!"
		}
		if strings.Contains(lower, "concept") || strings.Contains(lower, "understand") {
			return "I can help explain concepts from the Smart Notes! Please specify which topic or concept you'd like me to explain in detail. For example, you can ask about algorithms, data structures, or any other subject covered in the notes."
		}
	}

	if strings.Contains(lower, "hello") || strings.Contains(lower, "hi") {
		return "Hello! How can I assist you with your studies today?"
	}

	if strings.Contains(lower, "help") {
		return fmt.Sprintf(`I'm here to help you with %s! You can ask me:
- Questions about specific topics
- How to use features on this page
- Study tips and strategies
- Explanations of concepts
What would you like to know?`, strings.ToLower(contextLabel))
	}

	hints := `- Interactive notes are available in the embedded viewer
- Ask me specific questions about concepts
- I can provide detailed explanations`
	if contextLabel == constants.AssistantContextArchive {
		hints = `- You can search and download previous year question papers
- Upload new PYQs to help other students
- Filter by subject, year, or semester`
	}

	return fmt.Sprintf(`I understand you're asking about: "%s".

For %s:
%s

Could you provide more specific details about what you need help with? I can give you a more detailed answer!`, question, contextLabel, hints)
}

// Greeting returns the assistant's opening message for a page context.
func (s *assistantService) Greeting(contextLabel string) string {
	return fmt.Sprintf("Hello! I'm your AI study assistant. I can help you with questions about %s. Ask me anything!", strings.ToLower(contextLabel))
}
