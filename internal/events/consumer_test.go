package events

import (
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newTestConsumer(hub *Hub) *KafkaConsumer {
	return &KafkaConsumer{
		hub:    hub,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
}

func TestHandleMessageBroadcastsKnownEvents(t *testing.T) {
	hub := NewHub()
	consumer := newTestConsumer(hub)

	ch, cancel := hub.Subscribe("")
	defer cancel()

	for _, eventType := range []EventType{
		EventTypeOrderCreated,
		EventTypeOrderStatusChanged,
		EventTypeOrderCancelled,
	} {
		value, _ := json.Marshal(OrderEvent{Type: eventType, OrderID: "ord-1"})
		consumer.handleMessage(kafka.Message{Value: value})
	}

	if len(ch) != 3 {
		t.Errorf("expected 3 broadcast events, got %d", len(ch))
	}
}

func TestHandleMessageIgnoresUnknownAndMalformed(t *testing.T) {
	hub := NewHub()
	consumer := newTestConsumer(hub)

	ch, cancel := hub.Subscribe("")
	defer cancel()

	value, _ := json.Marshal(OrderEvent{Type: "order.exploded", OrderID: "ord-1"})
	consumer.handleMessage(kafka.Message{Value: value})
	consumer.handleMessage(kafka.Message{Value: []byte("not json")})

	if len(ch) != 0 {
		t.Errorf("expected no broadcasts, got %d", len(ch))
	}
}
