package events

import "sync"

// subscriberBuffer bounds how far a slow stream subscriber may lag
// before events are dropped for it.
const subscriberBuffer = 32

// Hub fans consumed order events out to in-process subscribers (the
// SSE stream handlers). Subscribers filter by customer ID; an empty
// filter receives everything.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	customerID string
	ch         chan *OrderEvent
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers for order events. customerID narrows delivery to
// one customer's orders; empty means all orders. The returned cancel
// func unregisters and closes the channel.
func (h *Hub) Subscribe(customerID string) (<-chan *OrderEvent, func()) {
	sub := &subscriber{
		customerID: customerID,
		ch:         make(chan *OrderEvent, subscriberBuffer),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
	}
	return sub.ch, cancel
}

// Broadcast delivers an event to every matching subscriber. Slow
// subscribers drop events instead of blocking the consumer loop.
func (h *Hub) Broadcast(event *OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if sub.customerID != "" && sub.customerID != event.CustomerID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}
