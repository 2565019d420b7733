package handler

import (
	"net/http"

	"unione/internal/delivery/http/response"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AnnouncementHandler holds dependencies for announcement handlers.
type AnnouncementHandler struct {
	uc usecase.AnnouncementUsecase
}

// NewAnnouncementHandler is the constructor for AnnouncementHandler, injected by Fx.
func NewAnnouncementHandler(uc usecase.AnnouncementUsecase) *AnnouncementHandler {
	return &AnnouncementHandler{uc: uc}
}

// List returns all announcements, newest first.
func (h *AnnouncementHandler) List(c echo.Context) error {
	announcements, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAnnouncementJSON(announcements), "")
}

// Create posts a new announcement and returns the refreshed list.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var input usecase.CreateAnnouncementInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid announcement input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	announcements, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAnnouncementJSON(announcements), "Announcement posted successfully")
}

// Delete removes an announcement authored by the current session and returns
// the refreshed list.
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	announcements, err := h.uc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAnnouncementJSON(announcements), "Announcement deleted successfully")
}
