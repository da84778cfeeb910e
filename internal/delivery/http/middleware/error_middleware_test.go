package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazar/internal/delivery/http/response"
	domainerrors "bazar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestErrorMiddleware_ShapesAppError(t *testing.T) {
	m := testErrorMiddleware()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	// Errors arrive wrapped; the envelope still reflects the base error.
	m.HandleHTTPError(errors.Wrap(domainerrors.ErrEmailTaken, "register"), c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, http.StatusConflict, envelope.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "EMAIL_TAKEN", envelope.Error.Code)
}

func TestErrorMiddleware_KeepsDetails(t *testing.T) {
	m := testErrorMiddleware()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	m.HandleHTTPError(domainerrors.ErrValidationFailed.WithDetails("name is required"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
	assert.Equal(t, "name is required", envelope.Error.Details)
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	m := testErrorMiddleware()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/nope", nil), rec)

	m.HandleHTTPError(echo.ErrNotFound, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "HTTP_ERROR", envelope.Error.Code)
}

func TestErrorMiddleware_UnknownErrorIsInternal(t *testing.T) {
	m := testErrorMiddleware()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	m.HandleHTTPError(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INTERNAL_ERROR", envelope.Error.Code)

	// Internal details never leak to the client.
	assert.Empty(t, envelope.Error.Details)
}
