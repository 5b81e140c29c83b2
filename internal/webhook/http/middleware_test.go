package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "github.com/allisson/hookguard/internal/errors"
	"github.com/allisson/hookguard/internal/metrics"
	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

// mockTokenUseCase is a mock implementation of usecase.TokenUseCase for testing.
type mockTokenUseCase struct {
	mock.Mock
}

func (m *mockTokenUseCase) Generate(
	ctx context.Context,
	clientID uuid.UUID,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	args := m.Called(ctx, clientID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhookDomain.GenerateTokenOutput), args.Error(1)
}

func (m *mockTokenUseCase) Validate(ctx context.Context, plainToken string) (*webhookDomain.Token, error) {
	args := m.Called(ctx, plainToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhookDomain.Token), args.Error(1)
}

func (m *mockTokenUseCase) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *mockTokenUseCase) Refresh(
	ctx context.Context,
	plainToken string,
	ttl time.Duration,
) (*webhookDomain.GenerateTokenOutput, error) {
	args := m.Called(ctx, plainToken, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhookDomain.GenerateTokenOutput), args.Error(1)
}

func (m *mockTokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// mockUsageLogUseCase is a mock implementation of usecase.UsageLogUseCase for testing.
type mockUsageLogUseCase struct {
	mock.Mock
}

func (m *mockUsageLogUseCase) Record(
	ctx context.Context,
	tokenID uuid.UUID,
	ipAddress, endpointPath string,
	success bool,
	errorDetail *string,
) error {
	args := m.Called(ctx, tokenID, ipAddress, endpointPath, success, errorDetail)
	return args.Error(0)
}

func (m *mockUsageLogUseCase) CleanupOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// mockRateLimiter is a mock implementation of service.RateLimiter for testing.
type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) Allow(tokenID uuid.UUID) bool {
	args := m.Called(tokenID)
	return args.Bool(0)
}

// mockAdminKeyService is a mock implementation of service.AdminKeyService for testing.
type mockAdminKeyService struct {
	mock.Mock
}

func (m *mockAdminKeyService) HashKey(plainKey string) (string, error) {
	args := m.Called(plainKey)
	return args.String(0), args.Error(1)
}

func (m *mockAdminKeyService) VerifyKey(plainKey string, hashedKey string) bool {
	args := m.Called(plainKey, hashedKey)
	return args.Bool(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validTestToken() *webhookDomain.Token {
	now := time.Now().UTC()
	return &webhookDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		ClientID:  uuid.Must(uuid.NewV7()),
		TokenHash: "stored-hash",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now.Add(-time.Hour),
	}
}

func TestAuthenticationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("MissingHeaderRejectsWithoutUsageRecord", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockTokens.AssertNotCalled(t, "Validate")
		mockUsage.AssertNotCalled(t, "Record")
	})

	t.Run("InvalidTokenRejectsWithoutUsageRecord", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}

		mockTokens.On("Validate", mock.Anything, "bad-token").
			Return(nil, webhookDomain.ErrInvalidToken).Once()

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		req.Header.Set(TokenHeader, "bad-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
		mockUsage.AssertNotCalled(t, "Record")
	})

	t.Run("StorageUnavailableAnswers503", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}

		mockTokens.On("Validate", mock.Anything, "some-token").
			Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "connection refused")).Once()

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		req.Header.Set(TokenHeader, "some-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "storage_unavailable")
		mockUsage.AssertNotCalled(t, "Record")
	})

	t.Run("ValidTokenRecordsSuccessfulUsage", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}
		token := validTestToken()

		mockTokens.On("Validate", mock.Anything, "good-token").Return(token, nil).Once()
		mockUsage.On("Record", mock.Anything, token.ID, mock.AnythingOfType("string"), "/v1/webhook", true, (*string)(nil)).
			Return(nil).Once()

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) {
			got, ok := GetToken(c.Request.Context())
			assert.True(t, ok)
			assert.Equal(t, token.ID, got.ID)
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		req.Header.Set(TokenHeader, "good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUsage.AssertExpectations(t)
	})

	t.Run("RateLimitedDownstreamRecordsFailedUsage", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}
		token := validTestToken()

		mockTokens.On("Validate", mock.Anything, "good-token").Return(token, nil).Once()
		mockUsage.On("Record", mock.Anything, token.ID, mock.AnythingOfType("string"), "/v1/webhook", false,
			mock.MatchedBy(func(detail *string) bool { return detail != nil && *detail != "" })).
			Return(nil).Once()

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limit_exceeded"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		req.Header.Set(TokenHeader, "good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		mockUsage.AssertExpectations(t)
	})

	t.Run("UsageRecordFailureDoesNotFailRequest", func(t *testing.T) {
		mockTokens := &mockTokenUseCase{}
		mockUsage := &mockUsageLogUseCase{}
		token := validTestToken()

		mockTokens.On("Validate", mock.Anything, "good-token").Return(token, nil).Once()
		mockUsage.On("Record", mock.Anything, token.ID, mock.AnythingOfType("string"), "/v1/webhook", true, (*string)(nil)).
			Return(apperrors.Wrap(apperrors.ErrUnavailable, "write failed")).Once()

		router := gin.New()
		router.Use(AuthenticationMiddleware(mockTokens, mockUsage, metrics.NewNoOpBusinessMetrics(), discardLogger()))
		router.POST("/v1/webhook", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/webhook", nil)
		req.Header.Set(TokenHeader, "good-token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
