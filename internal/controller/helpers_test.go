package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cassiomorais/threeds-gateway/internal/domain/errors"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		payload      any
		expectedBody string
	}{
		{
			name:         "simple map",
			status:       http.StatusOK,
			payload:      map[string]string{"message": "hello"},
			expectedBody: `{"message":"hello"}`,
		},
		{
			name:         "error envelope",
			status:       http.StatusBadRequest,
			payload:      ErrorResponse{Error: "bad request", Code: "validation_error"},
			expectedBody: `{"success":false,"error":"bad request","code":"validation_error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeJSON(w, tt.status, tt.payload)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestWriteError_FlowError(t *testing.T) {
	tests := []struct {
		name           string
		err            *apperrors.FlowError
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing credentials",
			err:            apperrors.MissingCredentials(1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apperrors.CodeMissingCredentials,
		},
		{
			name:           "missing body",
			err:            apperrors.MissingBody(2),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apperrors.CodeMissingBody,
		},
		{
			name:           "upstream status relayed",
			err:            apperrors.NewFlowError(3, http.StatusUnauthorized, apperrors.CodeUpstream, "gateway returned status 401"),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   apperrors.CodeUpstream,
		},
		{
			name:           "network error is fixed-status",
			err:            apperrors.NewFlowError(2, http.StatusBadGateway, apperrors.CodeNetwork, "no response received from gateway"),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   apperrors.CodeNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			err := json.NewDecoder(w.Body).Decode(&response)
			require.NoError(t, err)
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedCode, response.Code)
			assert.Equal(t, tt.err.Step, response.Step)
		})
	}
}

func TestWriteError_FlowErrorDetails(t *testing.T) {
	upstream := map[string]any{"error": map[string]any{"cause": "INVALID_REQUEST"}}
	flowErr := apperrors.NewFlowError(1, http.StatusBadRequest, apperrors.CodeUpstream, "gateway returned status 400").
		WithDetails(upstream)

	w := httptest.NewRecorder()
	writeError(w, flowErr)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, upstream, response.Details)
}

func TestWriteError_ValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, apperrors.NewValidationError("password", "must be at least 8 characters"))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, apperrors.CodeValidation, response.Code)
	assert.Contains(t, response.Error, "password")
}

func TestWriteError_UnknownError_FallbackToInternalServerError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, errors.New("unexpected error"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "internal_error", response.Code)
	assert.Equal(t, "internal server error", response.Error)
}

func TestDecodeJSON_InvalidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", strings.NewReader("{not json"))

	var dst map[string]any
	err := decodeJSON(req, &dst)

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "body", vErr.Field)
}
