package ports

import (
	"context"
	"time"
)

// SharedTokenStore persists out-of-band login tokens. Expiry is enforced by
// the store itself: Lookup never returns an expired token.
type SharedTokenStore interface {
	Save(ctx context.Context, token, uid string, ttl time.Duration) error
	// Lookup resolves a token to its target uid, failing with
	// domain.ErrInvalidSharedToken when the token is unknown or expired.
	Lookup(ctx context.Context, token string) (string, error)
}
