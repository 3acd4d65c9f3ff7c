package model

import "time"

// TokenInfo is display metadata decoded from an access token. It is never
// used to decide whether a token is valid; only the backend does that.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time // zero if the token carries no exp claim
}
