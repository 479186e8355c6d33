package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryTokenStore(), nil)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "fresh session should be unauthenticated")

	require.NoError(t, s.SetToken(ctx, "tok-1"))
	token, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, s.Clear(ctx))
	token, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionRejectsEmptyToken(t *testing.T) {
	s := New(NewMemoryTokenStore(), nil)
	assert.Error(t, s.SetToken(context.Background(), ""))
}

func TestSessionSubscribers(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryTokenStore(), nil)

	var events []EventKind
	unsubscribe := s.Subscribe(func(ev Event) {
		events = append(events, ev.Kind)
	})

	require.NoError(t, s.SetToken(ctx, "tok-1"))
	require.NoError(t, s.Expire(ctx))
	require.Equal(t, []EventKind{EventLogin, EventExpired}, events)

	unsubscribe()
	require.NoError(t, s.SetToken(ctx, "tok-2"))
	assert.Len(t, events, 2, "unsubscribed callback must not fire")
}

func TestSessionSubscriberMayReenter(t *testing.T) {
	ctx := context.Background()
	s := New(NewMemoryTokenStore(), nil)

	var seen string
	s.Subscribe(func(ev Event) {
		token, err := s.Token(ctx)
		require.NoError(t, err)
		seen = token
	})

	require.NoError(t, s.Expire(ctx))
	assert.Empty(t, seen)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "nurse.joy",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.True(t, TokenExpiry(token).Equal(exp))
	assert.False(t, TokenExpired(token, time.Now()))
	assert.True(t, TokenExpired(token, exp.Add(time.Minute)))
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	assert.True(t, TokenExpiry("not-a-jwt").IsZero())
	assert.False(t, TokenExpired("not-a-jwt", time.Now()))
}
