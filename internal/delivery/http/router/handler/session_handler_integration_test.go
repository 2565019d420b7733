package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"unione/config"
	"unione/internal/delivery/http/middleware"
	"unione/internal/delivery/http/validator"
	"unione/internal/infra/backend"
	"unione/internal/infra/qrcode"
	"unione/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer wires the handlers against the in-memory backend.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := backend.NewMemoryClient(&config.MemoryBackendConfig{BcryptCost: 4}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	session := impl.NewSessionProvider(client, logger)
	idCard := qrcode.NewIDCardService(256, "M")

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	sessionHandler := NewSessionHandler(session, idCard, logger)
	authMiddleware := middleware.NewAuthMiddleware(session)

	e.POST("/auth/signup", sessionHandler.Signup)
	e.POST("/auth/login", sessionHandler.Login)
	e.POST("/auth/logout", sessionHandler.Logout)
	e.GET("/session", sessionHandler.GetSession)
	e.GET("/profile", sessionHandler.GetProfile, authMiddleware.RequireSession)
	e.PUT("/profile", sessionHandler.UpdateProfile, authMiddleware.RequireSession)
	e.GET("/profile/id-card", sessionHandler.GetIDCard, authMiddleware.RequireSession)

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

const signupBody = `{
	"email": "jane@university.edu",
	"password": "secret123",
	"name": "Jane Doe",
	"department": "Computer Science",
	"year": "3",
	"studentId": "CS2023042"
}`

func TestSessionFlow_SignupProfileIDCardLogout(t *testing.T) {
	e := newTestServer(t)

	// Protected routes reject before any session exists
	rec := doJSON(e, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"phase":"authenticated"`)
	assert.Contains(t, rec.Body.String(), `"name":"Jane Doe"`)

	rec = doJSON(e, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@university.edu"`)

	rec = doJSON(e, http.MethodGet, "/profile", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"studentId":"CS2023042"`)

	rec = doJSON(e, http.MethodPut, "/profile", `{"year":"4"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"year":"4"`)

	rec = doJSON(e, http.MethodGet, "/profile/id-card", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	require.True(t, rec.Body.Len() > 4)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes()[:4])

	rec = doJSON(e, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/session", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"anonymous"`)
}

func TestSessionFlow_LoginValidation(t *testing.T) {
	e := newTestServer(t)

	// Malformed email fails request validation
	rec := doJSON(e, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown account maps to the credentials error
	rec = doJSON(e, http.MethodPost, "/auth/login", `{"email":"jane@university.edu","password":"secret123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestSessionFlow_DuplicateSignupConflict(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/signup", signupBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_ALREADY_REGISTERED")
}

func TestArchiveUpload_Multipart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := backend.NewMemoryClient(&config.MemoryBackendConfig{BcryptCost: 4}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	session := impl.NewSessionProvider(client, logger)
	archive := impl.NewArchiveService(client, session, logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	authMiddleware := middleware.NewAuthMiddleware(session)
	sessionHandler := NewSessionHandler(session, qrcode.NewIDCardService(256, "M"), logger)
	archiveHandler := NewArchiveHandler(archive)
	e.POST("/auth/signup", sessionHandler.Signup)
	e.GET("/archive", archiveHandler.List)
	e.POST("/archive", archiveHandler.Upload, authMiddleware.RequireSession)

	rec := doJSON(e, http.MethodPost, "/auth/signup", signupBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "Algorithms Final 2023"))
	require.NoError(t, writer.WriteField("subject", "Algorithms"))
	require.NoError(t, writer.WriteField("year", "2023"))
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="file"; filename="algo.pdf"`},
		"Content-Type":        {"application/pdf"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake exam paper"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/archive", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	uploadRec := httptest.NewRecorder()
	e.ServeHTTP(uploadRec, req)
	require.Equal(t, http.StatusCreated, uploadRec.Code, uploadRec.Body.String())

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(uploadRec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "N/A", envelope.Data[0]["semester"])
	assert.Equal(t, "jane@university.edu", envelope.Data[0]["uploadedBy"])
}
