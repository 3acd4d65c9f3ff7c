package application

import (
	"log/slog"
	"sync"

	"github.com/ericfisherdev/sessionpanel/internal/domain/model"
)

// SessionBus multicasts SessionChange notifications to registered subscribers.
// Delivery is synchronous and follows registration order. A subscriber that
// panics is logged and skipped; the remaining subscribers still run.
type SessionBus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscription
	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn func(model.SessionChange)
}

// NewSessionBus creates an empty bus. logger may be nil.
func NewSessionBus(logger *slog.Logger) *SessionBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionBus{logger: logger}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (b *SessionBus) Subscribe(fn func(model.SessionChange)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *SessionBus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers change to every current subscriber. Subscribers run outside
// the bus lock, so they may subscribe or unsubscribe while handling a change.
func (b *SessionBus) Publish(change model.SessionChange) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, s := range snapshot {
		b.deliver(s, change)
	}
}

// Len returns the number of registered subscribers.
func (b *SessionBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *SessionBus) deliver(s subscription, change model.SessionChange) {
	defer func() {
		if v := recover(); v != nil {
			b.logger.Error("session subscriber panicked",
				"subscriber", s.id,
				"panic", v,
			)
		}
	}()
	s.fn(change)
}
