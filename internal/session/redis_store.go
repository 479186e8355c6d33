package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RedisTokenStore keeps the bearer token in redis so a restarted console
// resumes the same session, mirroring how the browser app kept the token in
// durable storage.
type RedisTokenStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	key    string
}

// NewRedisTokenStore creates a token store under the given key.
func NewRedisTokenStore(redisClient *redis.Client, key string) *RedisTokenStore {
	if redisClient == nil {
		return nil
	}
	if key == "" {
		key = "session:token"
	}
	return &RedisTokenStore{
		redis:  redisClient,
		tracer: otel.Tracer("clinicconsole.internal.session.token_store"),
		key:    key,
	}
}

func (s *RedisTokenStore) Get(ctx context.Context) (string, error) {
	if s == nil || s.redis == nil {
		return "", nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := s.tracer.Start(ctx, "session.token_store.get")
	defer span.End()

	token, err := s.redis.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		span.RecordError(err)
		return "", fmt.Errorf("session: load token: %w", err)
	}
	return token, nil
}

func (s *RedisTokenStore) Set(ctx context.Context, token string) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if token == "" {
		return errors.New("session: token required")
	}

	ctx, span := s.tracer.Start(ctx, "session.token_store.set")
	defer span.End()

	// No TTL: the backend decides when the token stops being valid.
	if err := s.redis.Set(ctx, s.key, token, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: store token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := s.tracer.Start(ctx, "session.token_store.clear")
	defer span.End()

	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: clear token: %w", err)
	}
	return nil
}
