// Package memory holds in-process stores used when no redis is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/auth"
)

type revocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocationStore returns a process-local denylist. Entries vanish on restart.
func NewRevocationStore() auth.RevocationStore {
	return &revocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *revocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	if expiresAt.After(now) {
		s.revoked[tokenID] = expiresAt
	}
	return nil
}

func (s *revocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, ok := s.revoked[tokenID]
	return ok && exp.After(s.now()), nil
}
