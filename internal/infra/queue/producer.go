package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

const (
	KindQuote   = "quote"
	KindContact = "contact"
)

// NotificationPayload is one queued notification. Exactly one of Quote and
// Contact is set, matching Kind.
type NotificationPayload struct {
	Kind    string                  `json:"kind"`
	Quote   *entity.QuoteSubmission `json:"quote,omitempty"`
	Contact *entity.ContactMessage  `json:"contact,omitempty"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer hands notifications to the queue instead of sending them inline.
type Producer struct {
	Ch publisher
}

func NewProducer(ch publisher) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	return p.publish(ctx, q.ID, NotificationPayload{Kind: KindQuote, Quote: q})
}

func (p *Producer) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	return p.publish(ctx, m.ID, NotificationPayload{Kind: KindContact, Contact: m})
}

func (p *Producer) publish(ctx context.Context, id string, payload NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    id,
			Type:         payload.Kind,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to RabbitMQ: %w", err)
	}
	return nil
}
