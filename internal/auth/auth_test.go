package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/auth"
	"github.com/snnyvrz/shelfshare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("correct horse 1")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse 1", hash)

	assert.True(t, auth.CheckPassword(hash, "correct horse 1"))
	assert.False(t, auth.CheckPassword(hash, "wrong horse 1"))
	assert.False(t, auth.CheckPassword("not-a-hash", "correct horse 1"))
}

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := auth.NewTokenService("secret", time.Hour)
	id := uuid.New()

	token, expiresAt, err := svc.Issue(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	got, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := auth.NewTokenService("secret", -time.Minute)

	token, _, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsOtherSecret(t *testing.T) {
	token, _, err := auth.NewTokenService("one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = auth.NewTokenService("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = auth.NewTokenService("secret", time.Hour).Parse(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	_, err := auth.NewTokenService("secret", time.Hour).Parse("not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestGormSessionStore_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "reader@example.com")
	store := auth.NewGormSessionStore(db)
	ctx := context.Background()

	key, err := store.Create(ctx, user.ID, time.Hour)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	got, err := store.Lookup(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got)

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Lookup(ctx, key)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestGormSessionStore_ExpiredSessionIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.SeedUser(t, db, "reader@example.com")
	store := auth.NewGormSessionStore(db)
	ctx := context.Background()

	key, err := store.Create(ctx, user.ID, -time.Minute)
	require.NoError(t, err)

	_, err = store.Lookup(ctx, key)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestNewSessionStore_FallsBackToDatabase(t *testing.T) {
	db := testutil.NewTestDB(t)
	store := auth.NewSessionStore(nil, db)
	_, ok := store.(*auth.GormSessionStore)
	assert.True(t, ok)
}

func TestLoginThrottle_DisabledWithoutRedis(t *testing.T) {
	th := auth.NewLoginThrottle(nil, time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, th.RecordFailure(ctx, "a@example.com"))
	locked, _, err := th.Locked(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
	assert.NoError(t, th.Reset(ctx, "a@example.com"))
}
