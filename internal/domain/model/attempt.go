package model

// AttemptStatus is the lifecycle state of a login attempt or a protected fetch.
type AttemptStatus string

const (
	StatusIdle      AttemptStatus = "idle"
	StatusInFlight  AttemptStatus = "in-flight"
	StatusSucceeded AttemptStatus = "succeeded"
	StatusFailed    AttemptStatus = "failed"
)

// LoginAttempt is the transient outcome of one login action. The password is
// deliberately not part of it.
type LoginAttempt struct {
	Username string
	Status   AttemptStatus
	Err      error
}

// DisplayCap is the maximum number of protected records kept per fetch.
const DisplayCap = 5

// FetchResult is the outcome of one protected fetch. Items is empty whenever
// Status is StatusFailed. A succeeded fetch with no records carries
// ErrEmptyResult in Err so callers can render it neutrally.
type FetchResult struct {
	Items  []Customer
	Total  int // record count before truncation to DisplayCap
	Status AttemptStatus
	Err    error
}

// Empty reports whether the fetch succeeded but returned no records.
func (r FetchResult) Empty() bool {
	return r.Status == StatusSucceeded && len(r.Items) == 0
}
