package services

import (
	"context"
	"testing"
	"time"

	model "election-bknd/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func seedUser(t *testing.T, db *bun.DB, email string) model.User {
	t.Helper()
	u := model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	_, err := db.NewInsert().Model(&u).Exec(context.Background())
	require.NoError(t, err)
	return u
}

func TestListUsersSuperadminOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()
	seedUser(t, db, "a@example.com")
	seedUser(t, db, "b@example.com")

	_, err := svc.ListUsers(ctx, asScopeAdmin("rangpur"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.ListUsers(ctx, asNobody())
	assert.ErrorIs(t, err, ErrUnauthorized)

	users, err := svc.ListUsers(ctx, asSuperadmin())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSetRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()
	u := seedUser(t, db, "kaunia-admin@example.com")

	kaunia := "kaunia"
	require.NoError(t, svc.SetRole(ctx, asSuperadmin(), u.ID.String(), &kaunia))

	var got model.User
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", u.ID).Scan(ctx))
	require.NotNil(t, got.Role)
	assert.Equal(t, "kaunia", *got.Role)

	// Clearing with nil revokes the assignment.
	require.NoError(t, svc.SetRole(ctx, asSuperadmin(), u.ID.String(), nil))
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", u.ID).Scan(ctx))
	assert.Nil(t, got.Role)
}

func TestSetRoleRejectsUnknownScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	bad := "dhaka"
	err := svc.SetRole(ctx, asSuperadmin(), u.ID.String(), &bad)
	assert.ErrorIs(t, err, ErrValidation)

	empty := ""
	err = svc.SetRole(ctx, asSuperadmin(), u.ID.String(), &empty)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetRoleAuthorizationAndMissingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	role := "rangpur"
	err := svc.SetRole(ctx, asScopeAdmin("rangpur"), u.ID.String(), &role)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.SetRole(ctx, asSuperadmin(), uuid.NewString(), &role)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.SetRole(ctx, asSuperadmin(), "not-a-uuid", &role)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testLogger())
	ctx := context.Background()
	u := seedUser(t, db, "a@example.com")

	rt := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    u.ID,
		JTI:       uuid.NewString(),
		TokenHash: "h",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	_, err := db.NewInsert().Model(&rt).Exec(ctx)
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, asScopeAdmin("rangpur"), u.ID.String())
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.DeleteUser(ctx, asSuperadmin(), u.ID.String()))

	users, err := db.NewSelect().Model((*model.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, users)

	tokens, err := db.NewSelect().Model((*model.RefreshToken)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, tokens)
}
