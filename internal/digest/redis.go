package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"marketmind/internal/model"
)

// RedisStore keeps the digest under a single key, for deployments where the
// batch run and the API serve from different containers.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(url, key string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Save(ctx context.Context, d *model.DailyDigest) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set digest: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*model.DailyDigest, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get digest: %w", err)
	}

	var d model.DailyDigest
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal digest: %w", err)
	}

	return &d, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
