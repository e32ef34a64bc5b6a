package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ADat1304/Project-cafe/entity"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "cafe:session:"

// RedisSessionStore keeps sessions in redis so several BFF instances can
// share logins. Keys expire together with the session.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// sessionRecord carries the fields entity.Session hides from JSON.
type sessionRecord struct {
	entity.Session
	GatewayToken string `json:"gatewayToken"`
	Roles        string `json:"roles"`
}

func (r *RedisSessionStore) Create(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	data, err := json.Marshal(sessionRecord{Session: *s, GatewayToken: s.GatewayToken, Roles: s.Roles})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKeyPrefix+s.ID, data, ttl).Err()
}

func (r *RedisSessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	s := rec.Session
	s.GatewayToken = rec.GatewayToken
	s.Roles = rec.Roles
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// DeleteExpired has nothing to do: redis drops keys on their TTL.
func (r *RedisSessionStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
