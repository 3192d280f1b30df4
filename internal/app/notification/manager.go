// Package notification manages state subscriptions and broadcasting.
package notification

import (
	"sync"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/vara-s830/playerd/internal/app/player"
)

// Update is one published state change. SequenceNo increases by one per
// broadcast, so a subscriber can verify it observed every change in order.
type Update struct {
	SequenceNo uint64
	State      player.Snapshot
	Err        string // Engine failure description, empty otherwise
}

// Stream receives updates for one subscriber.
type Stream interface {
	Send(Update) error
}

// StreamFunc adapts a function to the Stream interface.
type StreamFunc func(Update) error

// Send implements Stream.
func (f StreamFunc) Send(u Update) error {
	return f(u)
}

// subscription represents a subscriber's subscription.
type subscription struct {
	id     string
	stream Stream
}

// Manager manages subscriptions and broadcasts state updates.
// Broadcast is invoked only from the store's dispatch goroutine, which is
// what guarantees FIFO delivery per subscriber; the manager itself only
// guards the subscription set.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	order         []string // subscription order, for deterministic delivery
	sequenceNo    uint64
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
	}
}

// Subscribe adds a subscriber and returns its subscription ID.
func (m *Manager) Subscribe(stream Stream) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{id: id, stream: stream}
	m.order = append(m.order, id)
	return id
}

// Unsubscribe removes a subscription. When called on the context that
// broadcasts (the store's dispatch goroutine, including from inside a
// Send callback), the subscriber receives no further updates once
// Unsubscribe returns. An unsubscribe racing a broadcast from another
// goroutine may still observe one in-flight delivery.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.subscriptions, subscriptionID)
	for i, id := range m.order {
		if id == subscriptionID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Count returns the number of subscribers.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Broadcast delivers a state snapshot to every subscriber, synchronously
// and in subscription order. Implements player.Publisher.
func (m *Manager) Broadcast(snap player.Snapshot, err error) {
	m.mu.Lock()
	m.sequenceNo++
	update := Update{
		SequenceNo: m.sequenceNo,
		State:      snap,
	}
	if err != nil {
		update.Err = err.Error()
	}

	subs := make([]*subscription, 0, len(m.order))
	for _, id := range m.order {
		subs = append(subs, m.subscriptions[id])
	}
	m.mu.Unlock()

	for _, sub := range subs {
		if sendErr := sub.stream.Send(update); sendErr != nil {
			zlog.Warn().Msgf("dropping subscriber %s: %v", sub.id, sendErr)
			m.Unsubscribe(sub.id)
		}
	}
}
