package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	apperrors "github.com/jamesandrewmyers/memento/internal/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "note lookup"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "conflict",
			err:            apperrors.ErrConflict,
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
		},
		{
			name:           "invalid input",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "title: cannot be blank"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "invalid_input",
		},
		{
			name:           "authentication failure maps to integrity error",
			err:            cryptoDomain.ErrAuthenticationFailed,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "integrity_error",
		},
		{
			name:           "unknown error hides details",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, recorder := newTestContext(t)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			response := decodeErrorResponse(t, recorder)
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}

	t.Run("internal errors never leak details", func(t *testing.T) {
		c, recorder := newTestContext(t)

		HandleErrorGin(c, apperrors.New("keeper unavailable at vault.internal:8200"), logger)

		response := decodeErrorResponse(t, recorder)
		assert.NotContains(t, response.Message, "vault.internal")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, recorder := newTestContext(t)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, recorder.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, recorder := newTestContext(t)

	HandleBadRequestGin(c, assert.AnError, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeErrorResponse(t, recorder)
	assert.Equal(t, "bad_request", response.Error)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, recorder := newTestContext(t)

	HandleValidationErrorGin(c, assert.AnError, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	response := decodeErrorResponse(t, recorder)
	assert.Equal(t, "validation_error", response.Error)
}

func TestMakeJSONResponse(t *testing.T) {
	recorder := httptest.NewRecorder()

	MakeJSONResponse(recorder, http.StatusOK, map[string]string{"status": "healthy"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, recorder.Body.String())
}
