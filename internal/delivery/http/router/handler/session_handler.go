package handler

import (
	"log/slog"
	"net/http"

	"unione/internal/delivery/http/response"
	"unione/internal/domain/entity"
	domainerrors "unione/internal/domain/errors"
	"unione/internal/domain/service"
	"unione/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for session and profile handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	idCard service.IDCardService
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, idCard service.IDCardService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		idCard: idCard,
		logger: logger,
	}
}

// Signup handles the account registration request.
func (h *SessionHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	snapshot, err := h.uc.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionJSON(*snapshot), "Account created successfully")
}

// Login handles the login request.
func (h *SessionHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	snapshot, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionJSON(*snapshot), "Login successful")
}

// Logout ends the current session. Logging out while signed out succeeds.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// GetSession returns the current session state, whatever it is.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return response.Success(c, http.StatusOK, toSessionJSON(h.uc.Current()), "")
}

// GetProfile returns the profile of the current session.
func (h *SessionHandler) GetProfile(c echo.Context) error {
	profile, ok := c.Get("profile").(*entity.Profile)
	if !ok || profile == nil {
		return domainerrors.ErrProfileNotFound.WrapMessage("session has no profile")
	}

	return response.Success(c, http.StatusOK, toProfileJSON(profile), "")
}

// UpdateProfile merges the submitted fields into the current profile.
func (h *SessionHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProfileJSON(profile), "Profile updated successfully")
}

// GetIDCard renders the current profile as a scannable digital student ID.
func (h *SessionHandler) GetIDCard(c echo.Context) error {
	profile, ok := c.Get("profile").(*entity.Profile)
	if !ok || profile == nil {
		return domainerrors.ErrProfileNotFound.WrapMessage("ID card needs a profile")
	}

	png, err := h.idCard.GenerateStudentID(profile)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
