package application_test

import (
	"context"
	"sync"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

// fakeSessionStore is an in-memory driven.SessionStore that records the order
// of writes so tests can check sequencing against bus notifications.
type fakeSessionStore struct {
	mu      sync.Mutex
	session *model.Session
	getErr  error
	setErr  error
	events  *[]string
}

func (f *fakeSessionStore) Get(_ context.Context) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.session == nil {
		return nil, nil
	}
	s := *f.session
	return &s, nil
}

func (f *fakeSessionStore) Set(_ context.Context, token, identity string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.session = &model.Session{Token: token, Identity: identity}
	f.log("store.set")
	return nil
}

func (f *fakeSessionStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.session = nil
	f.log("store.clear")
	return nil
}

func (f *fakeSessionStore) log(event string) {
	if f.events != nil {
		*f.events = append(*f.events, event)
	}
}

// fakeAuthAPI is a driven.AuthAPI that returns a canned token or error.
type fakeAuthAPI struct {
	token string
	err   error
	calls int
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.token, f.err
}

// fakeCustomerAPI is a driven.CustomerAPI that returns canned records and
// remembers the token of every call.
type fakeCustomerAPI struct {
	mu        sync.Mutex
	customers []model.Customer
	err       error
	tokens    []string
}

func (f *fakeCustomerAPI) FetchCustomers(_ context.Context, token string) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f.customers, f.err
}

func (f *fakeCustomerAPI) seenTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// gatedCustomerAPI returns a per-token response only once the test releases it.
type gatedCustomerAPI struct {
	gates   map[string]chan []model.Customer
	started chan string
}

func (g *gatedCustomerAPI) FetchCustomers(_ context.Context, token string) ([]model.Customer, error) {
	g.started <- token
	return <-g.gates[token], nil
}

// fakeInspector returns a fixed TokenInfo for any token.
type fakeInspector struct {
	info model.TokenInfo
	err  error
}

func (f fakeInspector) Inspect(_ string) (model.TokenInfo, error) {
	return f.info, f.err
}

func customers(ids ...int) []model.Customer {
	out := make([]model.Customer, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Customer{"id": float64(id)})
	}
	return out
}
