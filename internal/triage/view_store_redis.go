package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultViewStateKey = "job-triage:view-state"

// RedisViewStore keeps the view state as json under a single key.
type RedisViewStore struct {
	client *redis.Client
	key    string
}

// NewRedisViewStore connects to the redis url, e.g. redis://localhost:6379/0.
func NewRedisViewStore(redisURL string, key string) (*RedisViewStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second

	if key == "" {
		key = defaultViewStateKey
	}
	return &RedisViewStore{client: redis.NewClient(opts), key: key}, nil
}

func (r *RedisViewStore) Load(ctx context.Context) (*ViewState, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading view state: %w", err)
	}

	var state ViewState
	if err := json.Unmarshal(val, &state); err != nil {
		return nil, fmt.Errorf("decoding view state: %w", err)
	}
	return &state, nil
}

func (r *RedisViewStore) Save(ctx context.Context, state ViewState) error {
	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding view state: %w", err)
	}
	return r.client.Set(ctx, r.key, val, 0).Err()
}

func (r *RedisViewStore) Close() error {
	return r.client.Close()
}
