package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	webhookDomain "github.com/allisson/hookguard/internal/webhook/domain"
)

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

type mockClientUseCase struct {
	mock.Mock
}

func (m *mockClientUseCase) Create(
	ctx context.Context,
	createClientInput *webhookDomain.CreateClientInput,
) (*webhookDomain.Client, error) {
	args := m.Called(ctx, createClientInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhookDomain.Client), args.Error(1)
}

func (m *mockClientUseCase) Update(
	ctx context.Context,
	clientID uuid.UUID,
	updateClientInput *webhookDomain.UpdateClientInput,
) error {
	args := m.Called(ctx, clientID, updateClientInput)
	return args.Error(0)
}

func (m *mockClientUseCase) Get(ctx context.Context, clientID uuid.UUID) (*webhookDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*webhookDomain.Client), args.Error(1)
}

func (m *mockClientUseCase) Deactivate(ctx context.Context, clientID uuid.UUID) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

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
