package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository persists hashes of issued refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID, token string, expiresAt time.Time, session SessionTrackingRequest) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	// DeleteExpired drops rows that expired before cutoff and returns how many were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// RevocationStore is the denylist of logged-out access tokens, keyed by jti.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
