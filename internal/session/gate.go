// File: internal/session/gate.go

// Package session holds the process-wide authentication state: the identity
// most recently reported by the auth backend, plus a loading flag that stays
// set until the initial session bootstrap resolves. Components read
// snapshots and may subscribe for change notifications; the auth service is
// the only publisher.
package session

import (
	"sync"

	"go.uber.org/zap"

	"company_portal_backend/internal/shared"
)

// EventType identifies a session lifecycle transition.
type EventType string

const (
	EventSignedIn       EventType = "SIGNED_IN"
	EventSignedUp       EventType = "SIGNED_UP"
	EventSignedOut      EventType = "SIGNED_OUT"
	EventTokenRefreshed EventType = "TOKEN_REFRESHED"
)

// Notification is delivered to subscribers on every session change.
type Notification struct {
	Event    EventType
	Identity *shared.Identity // nil on sign-out
}

// subscriberBuffer bounds the per-subscriber queue; a subscriber that falls
// this far behind starts losing notifications rather than blocking the gate.
const subscriberBuffer = 16

// Gate is the observable session-state holder.
type Gate struct {
	mu          sync.RWMutex
	identity    *shared.Identity
	loading     bool
	nextID      int
	subscribers map[int]chan Notification
	logger      *zap.Logger
}

// Subscription is the handle returned by Subscribe. Close it (Unsubscribe)
// when the owning component is torn down.
type Subscription struct {
	C    <-chan Notification
	id   int
	gate *Gate
}

// Unsubscribe releases the subscription and closes its channel.
func (s *Subscription) Unsubscribe() {
	s.gate.unsubscribe(s.id)
}

// NewGate creates a Gate in the loading state; callers must Bootstrap it once
// the backend's session bootstrap has resolved.
func NewGate(logger *zap.Logger) *Gate {
	return &Gate{
		loading:     true,
		subscribers: make(map[int]chan Notification),
		logger:      logger.Named("SessionGate"),
	}
}

// Bootstrap records the result of the one-time initial session lookup and
// clears the loading flag. It does not notify subscribers: nothing changed,
// the state merely became known.
func (g *Gate) Bootstrap(identity *shared.Identity) {
	g.mu.Lock()
	g.identity = identity
	g.loading = false
	g.mu.Unlock()
	g.logger.Debug("Session gate bootstrapped", zap.Bool("authenticated", identity != nil))
}

// Snapshot returns the current identity (nil when unauthenticated) and the
// loading flag. The returned identity must be treated as read-only.
func (g *Gate) Snapshot() (*shared.Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.identity, g.loading
}

// Publish atomically replaces the current identity, clears the loading flag,
// and fans the notification out to all subscribers. Slow subscribers lose
// notifications instead of blocking the publisher.
func (g *Gate) Publish(event EventType, identity *shared.Identity) {
	g.mu.Lock()
	g.identity = identity
	g.loading = false
	channels := make([]chan Notification, 0, len(g.subscribers))
	for _, ch := range g.subscribers {
		channels = append(channels, ch)
	}
	g.mu.Unlock()

	n := Notification{Event: event, Identity: identity}
	for _, ch := range channels {
		select {
		case ch <- n:
		default:
			g.logger.Warn("Dropping session notification for slow subscriber",
				zap.String("event", string(event)))
		}
	}
}

// Subscribe registers for session-change notifications.
func (g *Gate) Subscribe() *Subscription {
	ch := make(chan Notification, subscriberBuffer)
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.subscribers[id] = ch
	g.mu.Unlock()
	return &Subscription{C: ch, id: id, gate: g}
}

func (g *Gate) unsubscribe(id int) {
	g.mu.Lock()
	ch, ok := g.subscribers[id]
	if ok {
		delete(g.subscribers, id)
	}
	g.mu.Unlock()
	if ok {
		close(ch)
	}
}
