package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func signedToken(t *testing.T, secret, clientID string) string {
	t.Helper()
	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedHandler(t *testing.T, sawClientID *string) http.Handler {
	t.Helper()
	return RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := GetClientID(r.Context()); ok {
			*sawClientID = id
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireAuth_ValidToken(t *testing.T) {
	var clientID string
	handler := protectedHandler(t, &clientID)

	req := httptest.NewRequest("POST", "/api/threeds/initiate-authentication", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, testSecret, "checkout-web"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "checkout-web", clientID)
}

func TestRequireAuth_Failures(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", "auth_required"},
		{"wrong scheme", "Basic abc123", "auth_invalid_scheme"},
		{"garbage token", "Bearer not-a-jwt", "auth_invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clientID string
			handler := protectedHandler(t, &clientID)

			req := httptest.NewRequest("POST", "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, clientID)

			var body map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	var clientID string
	handler := protectedHandler(t, &clientID)

	req := httptest.NewRequest("POST", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "other-secret", "checkout-web"))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
