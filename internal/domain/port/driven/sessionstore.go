package driven

import (
	"context"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

// SessionStore defines the driven port for durable session persistence.
// It is a dumb key holder: it never inspects or expires the token.
type SessionStore interface {
	// Get returns the stored session, or nil if no token is stored.
	Get(ctx context.Context) (*model.Session, error)

	// Set stores token and identity together. No reader observes one
	// without the other.
	Set(ctx context.Context, token, identity string) error

	// Clear removes both token and identity. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
