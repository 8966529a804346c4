package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
)

const subscriberBuffer = 16

// Hub fans events out to per-user subscribers. Slow subscribers drop events.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]chan domain.Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[uint64]chan domain.Event)}
}

// Subscribe returns a channel of the user's events and a func that releases it.
func (h *Hub) Subscribe(userID string) (<-chan domain.Event, func()) {
	ch := make(chan domain.Event, subscriberBuffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[uint64]chan domain.Event)
	}
	h.subs[userID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			close(ch)
		})
	}
}

// Publish delivers to local subscribers. It never blocks.
func (h *Hub) Publish(_ context.Context, event domain.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs[event.UserID] {
		select {
		case ch <- event:
		default:
			slog.Warn("dropping event for slow subscriber", "user_id", event.UserID, "type", event.Type)
		}
	}
	return nil
}

// Run forwards events until ctx is done or events is closed.
func (h *Hub) Run(ctx context.Context, events <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = h.Publish(ctx, ev)
		}
	}
}

// Subscribers reports how many streams are open for the user.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
