package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminKeyService(t *testing.T) {
	svc := NewAdminKeyService()

	hashed, err := svc.HashKey("admin-key-abc123")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, "admin-key-abc123", hashed)

	assert.True(t, svc.VerifyKey("admin-key-abc123", hashed))
	assert.False(t, svc.VerifyKey("wrong-key", hashed))
	assert.False(t, svc.VerifyKey("admin-key-abc123", "not-a-valid-hash"))
}

func TestAdminKeyService_HashesAreSalted(t *testing.T) {
	svc := NewAdminKeyService()

	first, err := svc.HashKey("admin-key-abc123")
	require.NoError(t, err)
	second, err := svc.HashKey("admin-key-abc123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.VerifyKey("admin-key-abc123", first))
	assert.True(t, svc.VerifyKey("admin-key-abc123", second))
}
