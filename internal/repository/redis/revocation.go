package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

type revocationStore struct {
	rdb *redis.Client
}

// NewRevocationStore keeps revoked access token ids until the token would have expired anyway.
func NewRevocationStore(rdb *redis.Client) auth.RevocationStore {
	return &revocationStore{rdb: rdb}
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

func (s *revocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *revocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
