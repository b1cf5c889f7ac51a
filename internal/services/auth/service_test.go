package auth

import (
	"context"
	"testing"
	"time"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"
	"piclips/internal/testutil"
	"piclips/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) Service {
	db := testutil.NewDB(t)
	return NewService(repositories.NewAccountRepository(db), Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		SignupBalance: 100,
	})
}

func TestRegisterLoginVerify(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", account.DisplayName)
	assert.Equal(t, int64(100), account.TokenBalance)
	assert.Equal(t, models.RoleUser, account.Role)
	assert.NotEqual(t, "secret123", account.PasswordHash)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, domainErrors.ErrUsernameTaken)

	_, err = svc.Login(ctx, "alice", "wrong-pass1")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)

	login, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	identity, err := svc.Verify(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, Identity{AccountID: account.ID, Username: "alice", Role: models.RoleUser}, identity)
	assert.False(t, identity.IsAdmin())
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t)
	tests := []RegisterInput{
		{Username: "", Password: "secret123"},
		{Username: "ab", Password: "secret123"},
		{Username: "has space", Password: "secret123"},
		{Username: "bob", Password: "short1"},
		{Username: "bob", Password: "noDigitsHere"},
	}
	for _, input := range tests {
		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, domainErrors.ErrValidation, "%+v", input)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, account.ID))

	_, err = svc.Verify(ctx, login.Token)
	assert.ErrorIs(t, err, domainErrors.ErrSessionExpired)
	assert.Equal(t, domainErrors.KindUnauthorized, domainErrors.KindOf(err))

	assert.ErrorIs(t, svc.Logout(ctx, "missing"), domainErrors.ErrAccountNotFound)
}

func TestVerify_Rejects(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Verify(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)

	orphan, _, err := utils.GenerateToken("test-secret", models.AccountClaims{AccountID: "ghost", TokenVersion: 1}, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = svc.Verify(ctx, orphan)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)

	forged, _, err := utils.GenerateToken("other-secret", models.AccountClaims{AccountID: "ghost"}, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = svc.Verify(ctx, forged)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}
