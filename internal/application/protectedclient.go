package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
	"github.com/ericfisherdev/sessionpanel/internal/domain/port/driven"
)

// ProtectedView is a snapshot of the protected panel's presentation state.
type ProtectedView struct {
	Result   model.FetchResult
	LoggedIn bool
	Identity string
}

// ProtectedResourceClient fetches the protected customer collection on demand
// and tracks the affordances the panel shows for the current session.
//
// Fetches are independent: starting one resets the displayed result, and the
// fetch that completes last owns the final state. Session changes update the
// affordances only; they never trigger a fetch.
type ProtectedResourceClient struct {
	store  driven.SessionStore
	api    driven.CustomerAPI
	logger *slog.Logger

	mu          sync.RWMutex
	result      model.FetchResult
	loggedIn    bool
	identity    string
	unsubscribe func()
}

// NewProtectedResourceClient creates a client subscribed to bus for its
// lifetime. The initial affordances are read from store; a read failure is
// logged and treated as logged out.
func NewProtectedResourceClient(
	ctx context.Context,
	store driven.SessionStore,
	api driven.CustomerAPI,
	bus *SessionBus,
	logger *slog.Logger,
) *ProtectedResourceClient {
	if logger == nil {
		logger = slog.Default()
	}

	c := &ProtectedResourceClient{
		store:  store,
		api:    api,
		logger: logger,
		result: model.FetchResult{Status: model.StatusIdle},
	}

	if sess, err := store.Get(ctx); err != nil {
		logger.Warn("failed to read initial session", "error", err)
	} else if sess.LoggedIn() {
		c.loggedIn = true
		c.identity = sess.Identity
	}

	c.unsubscribe = bus.Subscribe(c.onSessionChange)
	return c
}

// Close stops listening for session changes.
func (c *ProtectedResourceClient) Close() {
	c.unsubscribe()
}

// Fetch reads the current token, requests the protected collection and keeps
// the first model.DisplayCap records. A request without a token is sent
// unauthenticated on purpose.
func (c *ProtectedResourceClient) Fetch(ctx context.Context) model.FetchResult {
	c.mu.Lock()
	c.result = model.FetchResult{Status: model.StatusInFlight}
	c.mu.Unlock()

	res := c.fetch(ctx)

	c.mu.Lock()
	c.result = res
	c.mu.Unlock()

	return res
}

func (c *ProtectedResourceClient) fetch(ctx context.Context) model.FetchResult {
	sess, err := c.store.Get(ctx)
	if err != nil {
		return failed(fmt.Errorf("reading session: %w", err))
	}

	var token string
	if sess.LoggedIn() {
		token = sess.Token
	}

	all, err := c.api.FetchCustomers(ctx, token)
	if err != nil {
		c.logger.Warn("protected fetch failed",
			"kind", model.ErrorKind(err),
			"authenticated", token != "",
		)
		return failed(err)
	}

	n := min(len(all), model.DisplayCap)
	items := make([]model.Customer, n)
	copy(items, all[:n])

	res := model.FetchResult{
		Items:  items,
		Total:  len(all),
		Status: model.StatusSucceeded,
	}
	if n == 0 {
		res.Err = model.ErrEmptyResult
	}

	c.logger.Debug("protected fetch complete",
		"total", res.Total,
		"shown", n,
		"authenticated", token != "",
	)
	return res
}

// View returns the current presentation snapshot.
func (c *ProtectedResourceClient) View() ProtectedView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := c.result
	res.Items = append([]model.Customer(nil), c.result.Items...)
	return ProtectedView{
		Result:   res,
		LoggedIn: c.loggedIn,
		Identity: c.identity,
	}
}

func (c *ProtectedResourceClient) onSessionChange(change model.SessionChange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loggedIn = change.LoggedIn
	c.identity = change.Identity
}

func failed(err error) model.FetchResult {
	return model.FetchResult{
		Items:  []model.Customer{},
		Status: model.StatusFailed,
		Err:    err,
	}
}
