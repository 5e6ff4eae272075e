package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
)

// KafkaConsumer reads order events back off the orders topic and
// feeds them into the hub, which backs the SSE order streams.
type KafkaConsumer struct {
	reader *kafka.Reader
	hub    *Hub
	logger *zap.Logger
	stopCh chan struct{}
}

// NewKafkaConsumer creates a consumer on the orders topic.
func NewKafkaConsumer(cfg config.KafkaConfig, hub *Hub, logger *zap.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.OrdersTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})

	return &KafkaConsumer{
		reader: reader,
		hub:    hub,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

// Start consumes until ctx is cancelled or Stop is called.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info("Starting order event consumer")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stopCh:
			c.logger.Info("Order event consumer stopped")
			return nil
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.logger.Error("Failed to read message", zap.Error(err))
				continue
			}

			c.handleMessage(msg)
		}
	}
}

// Stop shuts the consumer down.
func (c *KafkaConsumer) Stop() {
	close(c.stopCh)
	c.reader.Close()
}

func (c *KafkaConsumer) handleMessage(msg kafka.Message) {
	var event OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Error("Failed to unmarshal event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}

	switch event.Type {
	case EventTypeOrderCreated, EventTypeOrderStatusChanged, EventTypeOrderCancelled:
		c.hub.Broadcast(&event)
	default:
		c.logger.Debug("Ignoring unknown event type", zap.String("type", string(event.Type)))
	}
}
