package services

import (
	"context"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/utils"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessions(t *testing.T) (*SessionService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionService("test-secret", client), mr
}

func TestSessionIssueValidateRevoke(t *testing.T) {
	sessions, mr := setupSessions(t)
	ctx := context.Background()

	token, err := sessions.Issue(42)
	require.NoError(t, err)

	userID, err := sessions.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, sessions.Revoke(ctx, token))
	assert.True(t, mr.Exists(denylistPrefix+token))
	ttl := mr.TTL(denylistPrefix + token)
	assert.True(t, ttl > 0 && ttl <= SessionTTL, "ttl %s", ttl)

	_, err = sessions.Validate(ctx, token)
	assert.True(t, apperr.Is(err, apperr.ErrUnauthorized))
}

func TestSessionRejectsForeignAndExpiredTokens(t *testing.T) {
	sessions, _ := setupSessions(t)
	ctx := context.Background()

	foreign, err := utils.GenerateToken("other-secret", 1, time.Hour)
	require.NoError(t, err)
	_, err = sessions.Validate(ctx, foreign)
	assert.True(t, apperr.Is(err, apperr.ErrUnauthorized))

	expired, err := utils.GenerateToken("test-secret", 1, -time.Minute)
	require.NoError(t, err)
	_, err = sessions.Validate(ctx, expired)
	assert.True(t, apperr.Is(err, apperr.ErrUnauthorized))

	_, err = sessions.Validate(ctx, "garbage")
	assert.True(t, apperr.Is(err, apperr.ErrUnauthorized))
}

func TestSessionValidateFailsWhenRedisIsDown(t *testing.T) {
	sessions, mr := setupSessions(t)
	token, err := sessions.Issue(1)
	require.NoError(t, err)

	mr.Close()
	_, err = sessions.Validate(context.Background(), token)
	assert.Error(t, err)
	assert.False(t, apperr.Is(err, apperr.ErrUnauthorized))
}
