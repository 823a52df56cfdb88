package auth_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/auth"
	infra "storefront/internal/infra/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

func signedToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  "42",
		"role": role,
		"exp":  time.Now().Add(expiresIn).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func TestService_NoToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.False(t, svc.IsAuthenticated(ctx, "sess1"))
	assert.False(t, svc.IsAdmin(ctx, "sess1"))
	assert.Empty(t, svc.Token(ctx, "sess1"))
}

func TestService_ValidUserToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "USER", time.Hour)))

	assert.True(t, svc.IsAuthenticated(ctx, "sess1"))
	assert.False(t, svc.IsAdmin(ctx, "sess1"))
}

func TestService_AdminRoleCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "admin", time.Hour)))
	assert.True(t, svc.IsAdmin(ctx, "sess1"))
}

func TestService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "ADMIN", -time.Minute)))

	assert.False(t, svc.IsAuthenticated(ctx, "sess1"))
	assert.False(t, svc.IsAdmin(ctx, "sess1"))
}

func TestService_GarbageToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.NoError(t, svc.SetToken(ctx, "sess1", "not-a-jwt"))
	assert.False(t, svc.IsAuthenticated(ctx, "sess1"))
}

func TestService_WrongSignature(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), "other_secret")

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "USER", time.Hour)))
	assert.False(t, svc.IsAuthenticated(ctx, "sess1"))
}

func TestService_UnverifiedModeReadsClaims(t *testing.T) {
	ctx := context.Background()

	// secret未設定の構成では署名検証せずexpとroleだけ読む
	svc := auth.NewService(infra.NewClientStorageMemory(), "")

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "ADMIN", time.Hour)))
	assert.True(t, svc.IsAuthenticated(ctx, "sess1"))
	assert.True(t, svc.IsAdmin(ctx, "sess1"))

	assert.NoError(t, svc.SetToken(ctx, "sess2", signedToken(t, "ADMIN", -time.Hour)))
	assert.False(t, svc.IsAuthenticated(ctx, "sess2"))
}

func TestService_ClearToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(infra.NewClientStorageMemory(), testSecret)

	assert.NoError(t, svc.SetToken(ctx, "sess1", signedToken(t, "USER", time.Hour)))
	assert.NoError(t, svc.ClearToken(ctx, "sess1"))
	assert.False(t, svc.IsAuthenticated(ctx, "sess1"))

	// 二重クリアもエラーにしない
	assert.NoError(t, svc.ClearToken(ctx, "sess1"))
}
