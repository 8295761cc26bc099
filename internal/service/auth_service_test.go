package service

import (
	"context"
	"testing"
	"time"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*fixture, AuthService) {
	f := newFixture()
	f.cfg.JWTSecret = "test-secret"
	f.cfg.JWTExpiry = 24
	f.cfg.RefreshExpiry = 7
	return f, NewAuthService(f.cfg, f.userRepo, f.memberSvc)
}

func TestRegisterProvisionsMembreProfile(t *testing.T) {
	f, authSvc := newAuthFixture()
	ctx := context.Background()

	user, access, refresh, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	member, err := f.memberSvc.ResolveProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, types.RoleMembre, member.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	_, _, _, err = authSvc.Register(ctx, "Other", "eve@promanager.fr", "password456")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	_, _, _, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	_, _, _, err = authSvc.Login(ctx, "eve@promanager.fr", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = authSvc.Login(ctx, "nobody@promanager.fr", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginProvisionsProfileForLegacyAccount(t *testing.T) {
	f, authSvc := newAuthFixture()
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	legacy := &repository.User{Name: "Old", Email: "old@promanager.fr", Password: string(hashed)}
	f.userRepo.Create(ctx, legacy)

	user, _, _, err := authSvc.Login(ctx, "old@promanager.fr", "password123")
	require.NoError(t, err)

	member, err := f.memberSvc.ResolveProfile(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, types.RoleMembre, member.Role)
}

func TestRefreshTokenRotates(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	_, _, refresh, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	access2, refresh2, err := authSvc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)

	// The consumed token is gone.
	_, _, err = authSvc.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The new one still works.
	_, _, err = authSvc.RefreshToken(ctx, refresh2)
	assert.NoError(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	f, authSvc := newAuthFixture()
	ctx := context.Background()

	user, _, _, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	stale := &repository.RefreshToken{
		Token:     "stale-token",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	f.userRepo.SaveRefreshToken(ctx, stale)

	_, _, err = authSvc.RefreshToken(ctx, "stale-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	_, _, refresh, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	require.NoError(t, authSvc.Logout(ctx, refresh))

	_, _, err = authSvc.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	user, access, _, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	token, err := authSvc.ValidateToken(access)
	require.NoError(t, err)

	id, err := authSvc.GetUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	_, authSvc := newAuthFixture()
	ctx := context.Background()

	_, access, _, err := authSvc.Register(ctx, "Eve", "eve@promanager.fr", "password123")
	require.NoError(t, err)

	otherCfg := *newFixture().cfg
	otherCfg.JWTSecret = "different-secret"
	other := NewAuthService(&otherCfg, newFakeUserRepo(), nil)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}
