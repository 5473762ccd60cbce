package services

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"election-bknd/internal/auth"
	"election-bknd/internal/config"
	model "election-bknd/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newAuthService(t *testing.T) (*AuthService, *bun.DB) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	cfg := &config.Config{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
	db := newTestDB(t)
	return NewAuthService(db, auth.NewJWTManagerFromKey(key, "test"), cfg, testLogger()), db
}

func assignRole(t *testing.T, db *bun.DB, email, role string) {
	t.Helper()
	_, err := db.NewUpdate().Model((*model.User)(nil)).
		Set("role = ?", role).
		Where("email = ?", email).
		Exec(context.Background())
	require.NoError(t, err)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	cases := []SignupRequest{
		{Name: "A", Email: "a@example.com", Password: "longenough"},
		{Name: "Alice", Email: "not-an-email", Password: "longenough"},
		{Name: "Alice", Email: "a@example.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Signup(ctx, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestSignupCreatesRolelessUser(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "Alice@Example.COM", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Nil(t, u.Role)

	_, err = svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrValidation)
}

// An account without a role assignment cannot sign in, and the error is the
// same opaque one a wrong password produces.
func TestLoginRequiresRole(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "longenough", "test")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, wrongPw := svc.Login(ctx, "alice@example.com", "wrong-password", "test")
	assert.Equal(t, err, wrongPw)

	assignRole(t, db, "alice@example.com", "rangpur")

	pair, info, err := svc.Login(ctx, "alice@example.com", "longenough", "test")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, info.Role)
	assert.Equal(t, "rangpur", *info.Role)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1", "test")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	require.NoError(t, err)
	assignRole(t, db, "alice@example.com", "rangpur")

	pair, _, err := svc.Login(ctx, "alice@example.com", "longenough", "test")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken, "test")
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The consumed token is revoked and cannot be replayed.
	_, err = svc.Refresh(ctx, pair.RefreshToken, "test")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Refresh(ctx, next.RefreshToken, "test")
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	require.NoError(t, err)
	assignRole(t, db, "alice@example.com", "rangpur")

	pair, _, err := svc.Login(ctx, "alice@example.com", "longenough", "test")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken, "test")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Refresh(ctx, "garbage", "test")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	require.NoError(t, err)
	assignRole(t, db, "alice@example.com", "rangpur")

	pair, _, err := svc.Login(ctx, "alice@example.com", "longenough", "test")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken, "test")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginCapsActiveSessions(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "longenough"})
	require.NoError(t, err)
	assignRole(t, db, "alice@example.com", "rangpur")

	for i := 0; i < 4; i++ {
		_, _, err := svc.Login(ctx, "alice@example.com", "longenough", "test")
		require.NoError(t, err)
	}

	count, err := db.NewSelect().Model((*model.RefreshToken)(nil)).
		Where("revoked = ?", false).
		Count(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, 2)
}
