package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

const sessionKeyPrefix = "gg:session:"

// RedisStore keeps sessions as JSON values whose TTL is refreshed on every write, so
// an abandoned call expires without a sweeper.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisStore) Create(ctx context.Context, s models.Session) (models.Session, bool, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return models.Session{}, false, err
	}
	ok, err := r.client.SetNX(ctx, key(s.ID), b, r.ttl).Result()
	if err != nil {
		return models.Session{}, false, fmt.Errorf("create session: %w", err)
	}
	if ok {
		return s.Clone(), true, nil
	}
	existing, err := r.Get(ctx, s.ID)
	if err != nil {
		return models.Session{}, false, err
	}
	return existing, false, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (models.Session, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, s models.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetXX(ctx, key(s.ID), b, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, key(id)).Err()
}

func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
