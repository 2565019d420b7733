package usecase

import "context"

// AssistantUsecase defines the interface for the scripted study assistant
type AssistantUsecase interface {
	// Ask answers a question for the given page context. The reply is chosen
	// by keyword rules; unmatched questions get a generic fallback.
	Ask(ctx context.Context, question, contextLabel string) (string, error)

	// Greeting returns the assistant's opening message for a page context
	Greeting(contextLabel string) string
}
