package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventHandler processes one decoded ticket event. A returned error stops
// the consume loop.
type EventHandler func(ctx context.Context, event TicketEvent) error

// Consumer reads the ticket-events topic as part of a consumer group and
// delivers decoded events to a handler.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume runs until the context is cancelled or the handler fails.
// Payloads that do not decode as a TicketEvent are logged and skipped
// rather than poisoning the group.
func (c *Consumer) Consume(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		var event TicketEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("skip malformed ticket event at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}
