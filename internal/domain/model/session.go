package model

// Slot names used by the durable session store. They mirror the two keys the
// browser panel kept in local storage so existing deployments read the same
// values.
const (
	SlotAuthToken = "authToken"
	SlotIdentity  = "userEmail"
)

// Session is the authenticated state held by the SessionStore. Token and
// Identity are set and cleared together; a nil *Session means logged out.
type Session struct {
	Token    string
	Identity string
}

// LoggedIn reports whether s holds a token. Safe to call on a nil receiver.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// SessionChange is broadcast whenever the session appears or disappears.
// Identity is empty when LoggedIn is false.
type SessionChange struct {
	LoggedIn bool
	Identity string
}
