package ports

import (
	"context"
	"time"

	"github.com/layer-3/zetafrog/core"
)

// TokenStore interface for local API token invalidation
type TokenStore interface {
	InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error
	IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error)
}

// SnapshotStore keeps the last frog snapshot fetched from the game backend
type SnapshotStore interface {
	SaveFrog(ctx context.Context, frog core.Frog) error
	Frog(ctx context.Context, tokenID int) (core.Frog, error)
}
