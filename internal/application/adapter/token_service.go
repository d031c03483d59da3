package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Principal is the verified identity behind a request. UserID is the
// identity provider's subject and doubles as the local user id.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	ExpiresAt time.Time
}

// TokenVerifier checks bearer tokens issued by the external identity provider.
// The API never issues tokens itself.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}
