package session

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) *RedisTokenStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenStore(client, "session:token")
}

func TestRedisTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	token, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token before login, got %q", token)
	}

	if err := store.Set(ctx, "tok-abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	token, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if token != "tok-abc" {
		t.Fatalf("token = %q, want tok-abc", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	token, err = store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() after clear error = %v", err)
	}
	if token != "" {
		t.Fatalf("expected cleared token, got %q", token)
	}
}

func TestRedisTokenStoreRejectsEmptySet(t *testing.T) {
	store := newRedisStore(t)
	if err := store.Set(context.Background(), ""); err == nil {
		t.Fatal("expected error storing empty token")
	}
}

func TestRedisTokenStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	first := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisTokenStore(first, "session:token")
	if err := store.Set(ctx, "tok-persisted"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	_ = first.Close()

	// A new client against the same redis sees the token, like a page reload.
	second := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = second.Close() })
	reopened := NewRedisTokenStore(second, "session:token")
	token, err := reopened.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if token != "tok-persisted" {
		t.Fatalf("token = %q, want tok-persisted", token)
	}
}

func TestRedisTokenStoreNilGuards(t *testing.T) {
	var store *RedisTokenStore
	if _, err := store.Get(context.Background()); err != nil {
		t.Fatalf("nil store Get() error = %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("nil store Clear() error = %v", err)
	}
}
