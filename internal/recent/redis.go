package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apetrovs/newshub/internal/model"
)

const defaultKey = "newshub:recent_searches"

// RedisStore keeps the whole list as one JSON blob under a fixed key, the
// same discipline the browser build used against localStorage.
type RedisStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, key: defaultKey, now: time.Now}, nil
}

func (r *RedisStore) List(ctx context.Context) ([]model.RecentSearch, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var searches []model.RecentSearch
	if err := json.Unmarshal([]byte(raw), &searches); err != nil {
		return nil, fmt.Errorf("decode recent searches: %w", err)
	}
	return searches, nil
}

func (r *RedisStore) Add(ctx context.Context, query string, sources []string) error {
	searches, err := r.List(ctx)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(push(searches, query, sources, r.now().UTC()))
	if err != nil {
		return fmt.Errorf("encode recent searches: %w", err)
	}

	if err := r.client.Set(ctx, r.key, encoded, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Filter(ctx context.Context, text string) ([]model.RecentSearch, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter(all, text), nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
