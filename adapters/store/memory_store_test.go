package store

import (
	"context"
	"testing"
	"time"

	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.TokenStore    = (*MemoryStore)(nil)
	_ ports.SnapshotStore = (*MemoryStore)(nil)
	_ ports.TokenStore    = (*RedisStore)(nil)
	_ ports.SnapshotStore = (*RedisStore)(nil)
)

func TestMemoryStoreTokens(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	invalidated, err := s.IsTokenInvalidated(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, invalidated)

	require.NoError(t, s.InvalidateToken(ctx, "jti", time.Hour))
	invalidated, err = s.IsTokenInvalidated(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, invalidated)
}

func TestMemoryStoreTokenExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.InvalidateToken(ctx, "short", 10*time.Millisecond))
	assert.Eventually(t, func() bool {
		invalidated, err := s.IsTokenInvalidated(ctx, "short")
		return err == nil && !invalidated
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStoreSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Frog(ctx, 1)
	assert.ErrorIs(t, err, core.ErrSnapshotNotFound)

	require.NoError(t, s.SaveFrog(ctx, core.Frog{TokenID: 1, Name: "Ribbit", Level: 1}))
	require.NoError(t, s.SaveFrog(ctx, core.Frog{TokenID: 1, Name: "Ribbit", Level: 2}))

	frog, err := s.Frog(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, frog.Level)
}
