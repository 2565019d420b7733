package handler

import (
	"io"
	"net/http"

	"unione/internal/delivery/http/response"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ArchiveHandler holds dependencies for the past-paper archive handlers.
type ArchiveHandler struct {
	uc usecase.ArchiveUsecase
}

// NewArchiveHandler is the constructor for ArchiveHandler, injected by Fx.
func NewArchiveHandler(uc usecase.ArchiveUsecase) *ArchiveHandler {
	return &ArchiveHandler{uc: uc}
}

// List returns all archive entries, newest upload first.
func (h *ArchiveHandler) List(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toArchiveItemJSON(items), "")
}

// Upload accepts a multipart form with the paper metadata and its PDF under
// the "file" field, then returns the refreshed list.
func (h *ArchiveHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "A file field is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.WithStack(err)
	}

	input := usecase.UploadArchiveInput{
		Title:       c.FormValue("title"),
		Subject:     c.FormValue("subject"),
		Year:        c.FormValue("year"),
		Semester:    c.FormValue("semester"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}

	items, err := h.uc.Upload(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toArchiveItemJSON(items), "PYQ uploaded successfully")
}
