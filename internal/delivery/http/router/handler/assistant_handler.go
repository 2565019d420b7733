package handler

import (
	"net/http"

	"unione/internal/delivery/http/response"
	"unione/internal/domain/constants"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AskRequest is the assistant question payload.
type AskRequest struct {
	Question string `json:"question" validate:"required"`
	Context  string `json:"context"`
}

// AssistantHandler holds dependencies for the study assistant handlers.
type AssistantHandler struct {
	uc usecase.AssistantUsecase
}

// NewAssistantHandler is the constructor for AssistantHandler, injected by Fx.
func NewAssistantHandler(uc usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Ask answers a question for the given page context.
func (h *AssistantHandler) Ask(c echo.Context) error {
	var input AskRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid question input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}
	if input.Context == "" {
		input.Context = constants.AssistantContextArchive
	}

	reply, err := h.uc.Ask(c.Request().Context(), input.Question, input.Context)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"reply":   reply,
		"context": input.Context,
	}, "")
}

// Greeting returns the assistant's opening message for a page context.
func (h *AssistantHandler) Greeting(c echo.Context) error {
	contextLabel := c.QueryParam("context")
	if contextLabel == "" {
		contextLabel = constants.AssistantContextArchive
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"greeting": h.uc.Greeting(contextLabel),
		"context":  contextLabel,
	}, "")
}
