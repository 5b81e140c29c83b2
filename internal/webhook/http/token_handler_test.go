package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

func generateOutput(clientID uuid.UUID) *webhookDomain.GenerateTokenOutput {
	now := time.Now().UTC()
	return &webhookDomain.GenerateTokenOutput{
		PlainToken: "plain-token-abc",
		Token: &webhookDomain.Token{
			ID:        uuid.Must(uuid.NewV7()),
			ClientID:  clientID,
			TokenHash: "hash-abc",
			ExpiresAt: now.Add(30 * 24 * time.Hour),
			CreatedAt: now,
		},
	}
}

func TestTokenHandler_GenerateTokenHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		clientID := uuid.Must(uuid.NewV7())
		output := generateOutput(clientID)

		mockTokens.On("Generate", mock.Anything, clientID, time.Duration(0)).Return(output, nil).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/generate", handler.GenerateTokenHandler)

		body, err := json.Marshal(map[string]any{"client_id": clientID.String()})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "plain-token-abc", resp["token"])
		assert.Equal(t, clientID.String(), resp["client_id"])
		mockTokens.AssertExpectations(t)
	})

	t.Run("ExplicitExpiration", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		clientID := uuid.Must(uuid.NewV7())
		output := generateOutput(clientID)

		mockTokens.On("Generate", mock.Anything, clientID, time.Hour).Return(output, nil).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/generate", handler.GenerateTokenHandler)

		body, err := json.Marshal(map[string]any{
			"client_id":          clientID.String(),
			"expires_in_seconds": 3600,
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockTokens.AssertExpectations(t)
	})

	t.Run("InvalidClientID", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/generate", handler.GenerateTokenHandler)

		body := []byte(`{"client_id": "not-a-uuid"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockTokens.AssertNotCalled(t, "Generate")
	})

	t.Run("ClientNotFound", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		clientID := uuid.Must(uuid.NewV7())

		mockTokens.On("Generate", mock.Anything, clientID, time.Duration(0)).
			Return(nil, webhookDomain.ErrClientNotFound).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/generate", handler.GenerateTokenHandler)

		body, err := json.Marshal(map[string]any{"client_id": clientID.String()})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/generate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTokenHandler_RefreshTokenHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		clientID := uuid.Must(uuid.NewV7())
		output := generateOutput(clientID)

		mockTokens.On("Refresh", mock.Anything, "old-token", time.Duration(0)).Return(output, nil).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/refresh", handler.RefreshTokenHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/refresh", nil)
		req.Header.Set(TokenHeader, "old-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "plain-token-abc")
		mockTokens.AssertExpectations(t)
	})

	t.Run("MissingTokenHeader", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/refresh", handler.RefreshTokenHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/refresh", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokens.AssertNotCalled(t, "Refresh")
	})

	t.Run("InvalidToken", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}

		mockTokens.On("Refresh", mock.Anything, "bad-token", time.Duration(0)).
			Return(nil, webhookDomain.ErrInvalidToken).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/refresh", handler.RefreshTokenHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/refresh", nil)
		req.Header.Set(TokenHeader, "bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTokenHandler_RevokeTokenHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		tokenID := uuid.Must(uuid.NewV7())

		mockTokens.On("Revoke", mock.Anything, tokenID).Return(nil).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/revoke", handler.RevokeTokenHandler)

		body, err := json.Marshal(map[string]any{"token_id": tokenID.String()})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/revoke", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockTokens.AssertExpectations(t)
	})

	t.Run("TokenNotFound", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		tokenID := uuid.Must(uuid.NewV7())

		mockTokens.On("Revoke", mock.Anything, tokenID).Return(webhookDomain.ErrTokenNotFound).Once()

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/revoke", handler.RevokeTokenHandler)

		body, err := json.Marshal(map[string]any{"token_id": tokenID.String()})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/revoke", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingTokenID", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}

		handler := NewTokenHandler(mockTokens, discardLogger())
		router := gin.New()
		router.POST("/v1/webhook/token/revoke", handler.RevokeTokenHandler)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook/token/revoke", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockTokens.AssertNotCalled(t, "Revoke")
	})
}
