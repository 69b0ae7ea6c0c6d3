package ports

import (
	"context"
	"time"
)

// SharedTokenGrant is a freshly minted out-of-band login token.
type SharedTokenGrant struct {
	Token     string
	ExpiresAt time.Time
}

// LoginResult is the short-lived credential minted for a shared token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

// SharedTokenService mints and redeems out-of-band login tokens.
type SharedTokenService interface {
	// Generate creates an opaque token for the target uid, valid for
	// daysValid days (defaults applied by the service).
	Generate(ctx context.Context, targetUID string, daysValid int) (*SharedTokenGrant, error)
	// Login exchanges a shared token for a signed bearer credential
	// carrying the target user's identity and admin flag.
	Login(ctx context.Context, token string) (*LoginResult, error)
}
