package services

import (
	"context"
	"errors"
	"promptbuilder-backend/internal/apperr"
	"promptbuilder-backend/internal/utils"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	denylistPrefix = "denylist:"
	SessionTTL     = 72 * time.Hour
)

// SessionService issues signed session tokens and revokes them through a redis
// denylist that expires together with the token.
type SessionService struct {
	secret string
	redis  *redis.Client
	ttl    time.Duration
}

func NewSessionService(secret string, client *redis.Client) *SessionService {
	return &SessionService{secret: secret, redis: client, ttl: SessionTTL}
}

// TTL is how long an issued session stays valid.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue returns a new session token for userID.
func (s *SessionService) Issue(userID uint) (string, error) {
	return utils.GenerateToken(s.secret, userID, s.ttl)
}

// Validate returns the user id carried by a live, unrevoked token.
func (s *SessionService) Validate(ctx context.Context, token string) (uint, error) {
	revoked, err := s.isDenylisted(ctx, token)
	if err != nil {
		return 0, err
	}
	if revoked {
		return 0, apperr.Unauthorized("Session has been revoked")
	}

	claims, err := utils.ValidateToken(s.secret, token)
	if err != nil {
		return 0, apperr.Unauthorized("Invalid or expired session")
	}
	return claims.UserID, nil
}

// Revoke denylists token for the rest of its lifetime. Tokens that no longer
// parse are denylisted for the full session TTL.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	remaining := s.ttl
	if claims, err := utils.ValidateToken(s.secret, token); err == nil && claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}
	if remaining <= 0 {
		return nil
	}
	return s.redis.Set(ctx, denylistPrefix+token, 1, remaining).Err()
}

func (s *SessionService) isDenylisted(ctx context.Context, token string) (bool, error) {
	val, err := s.redis.Get(ctx, denylistPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
