package handler

import (
	"net/http"

	"unione/internal/delivery/http/response"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotesHandler holds dependencies for the study-note handlers.
type NotesHandler struct {
	uc usecase.NotesUsecase
}

// NewNotesHandler is the constructor for NotesHandler, injected by Fx.
func NewNotesHandler(uc usecase.NotesUsecase) *NotesHandler {
	return &NotesHandler{uc: uc}
}

// List returns the configured note sources in display order.
func (h *NotesHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.uc.Sources(), "")
}
