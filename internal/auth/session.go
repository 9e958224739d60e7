package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/snnyvrz/shelfshare/internal/model"
	"gorm.io/gorm"
)

const SessionCookieName = "sessionid"

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore keeps server-side login sessions keyed by an opaque cookie
// value.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, key string) (uuid.UUID, error)
	Delete(ctx context.Context, key string) error
}

func newSessionKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewSessionStore prefers Redis and falls back to the relational store.
func NewSessionStore(rdb *redis.Client, db *gorm.DB) SessionStore {
	if rdb != nil {
		return NewRedisSessionStore(rdb)
	}
	return NewGormSessionStore(db)
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func redisSessionKey(key string) string {
	return "session:" + key
}

func (s *RedisSessionStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	key, err := newSessionKey()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, redisSessionKey(key), userID.String(), ttl).Err(); err != nil {
		return "", err
	}
	return key, nil
}

func (s *RedisSessionStore) Lookup(ctx context.Context, key string) (uuid.UUID, error) {
	val, err := s.rdb.Get(ctx, redisSessionKey(key)).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrSessionNotFound
	}
	return id, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, redisSessionKey(key)).Err()
}

type GormSessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db, now: time.Now}
}

func (s *GormSessionStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	key, err := newSessionKey()
	if err != nil {
		return "", err
	}

	sess := model.Session{
		Key:       key,
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", err
	}
	return key, nil
}

func (s *GormSessionStore) Lookup(ctx context.Context, key string) (uuid.UUID, error) {
	var sess model.Session
	err := s.db.WithContext(ctx).
		Where("session_key = ? AND expires_at > ?", key, s.now()).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return sess.UserID, nil
}

func (s *GormSessionStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&model.Session{}, "session_key = ?", key).Error
}

// PurgeExpired removes sessions past their expiry.
func (s *GormSessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
