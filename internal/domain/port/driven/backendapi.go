package driven

import (
	"context"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

// AuthAPI defines the driven port for the backend login endpoint.
type AuthAPI interface {
	// Login exchanges credentials for an access token. Errors are classified
	// with the model taxonomy (ErrInvalidCredentials, ErrEndpointNotFound,
	// *model.UnexpectedHTTPError, ErrMalformedResponse, ErrTimeout,
	// ErrBackendUnreachable).
	Login(ctx context.Context, username, password string) (string, error)
}

// CustomerAPI defines the driven port for the protected customers endpoint.
type CustomerAPI interface {
	// FetchCustomers returns every record from the protected collection,
	// untruncated. token may be empty, in which case the request is sent
	// without credentials.
	FetchCustomers(ctx context.Context, token string) ([]model.Customer, error)
}

// TokenInspector decodes display metadata from an access token.
type TokenInspector interface {
	Inspect(token string) (model.TokenInfo, error)
}
