// Package events describes product lifecycle notifications and how they leave the process.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
	ProductDeleted Type = "product.deleted"
)

// ProductEvent is published after a product write commits.
type ProductEvent struct {
	Type       Type      `json:"type"`
	ProductID  int       `json:"productId"`
	Owner      string    `json:"owner"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher delivers product events.
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
}

// Sender is the transport behind AMQPPublisher; *rabbitmq.Client implements it.
type Sender interface {
	Publish(body []byte) error
}

// AMQPPublisher encodes events as JSON and hands them to a Sender.
type AMQPPublisher struct {
	sender Sender
}

func NewAMQPPublisher(sender Sender) *AMQPPublisher {
	return &AMQPPublisher{sender: sender}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ProductEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	return p.sender.Publish(body)
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }

// LogHandler returns a consumer callback that decodes product events and logs them.
func LogHandler(log *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("malformed product event: %w", err)
		}
		log.Info("product event received",
			zap.String("type", string(event.Type)),
			zap.Int("product_id", event.ProductID),
			zap.String("owner", event.Owner),
			zap.Time("occurred_at", event.OccurredAt),
		)
		return nil
	}
}
