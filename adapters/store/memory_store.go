package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/zetafrog/core"
)

// MemoryStore is an in-memory implementation of the token and snapshot stores
type MemoryStore struct {
	invalidatedTokens map[string]time.Time
	frogs             map[int]core.Frog
	mu                sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		invalidatedTokens: make(map[string]time.Time),
		frogs:             make(map[int]core.Frog),
	}
}

// InvalidateToken marks a token as invalidated
func (s *MemoryStore) InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiryTime := time.Now().Add(expiry)
	s.invalidatedTokens[tokenID] = expiryTime

	// Start a cleanup goroutine
	go func() {
		time.Sleep(expiry)

		s.mu.Lock()
		defer s.mu.Unlock()

		// Only delete if the expiry time hasn't changed
		if storedExpiry, exists := s.invalidatedTokens[tokenID]; exists && !storedExpiry.After(expiryTime) {
			delete(s.invalidatedTokens, tokenID)
		}
	}()

	return nil
}

// IsTokenInvalidated checks if a token is invalidated
func (s *MemoryStore) IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiryTime, exists := s.invalidatedTokens[tokenID]
	if !exists {
		return false, nil
	}

	// Check if the token invalidation has expired
	if time.Now().After(expiryTime) {
		return false, nil
	}

	return true, nil
}

// SaveFrog replaces the stored snapshot of a frog
func (s *MemoryStore) SaveFrog(ctx context.Context, frog core.Frog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frogs[frog.TokenID] = frog
	return nil
}

// Frog returns the stored snapshot of a frog
func (s *MemoryStore) Frog(ctx context.Context, tokenID int) (core.Frog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frog, ok := s.frogs[tokenID]
	if !ok {
		return core.Frog{}, core.ErrSnapshotNotFound
	}
	return frog, nil
}
