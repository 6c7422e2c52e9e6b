// Package stream publishes submission events to Kafka for analytics and CRM
// consumers.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

const (
	EventQuoteSubmitted   = "quote_submitted"
	EventContactSubmitted = "contact_submitted"
)

// Event is the record value. The key is the submission id.
type Event struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}
}

func (p *Publisher) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	return p.publish(ctx, q.ID, EventQuoteSubmitted, q.ReceivedAt, q)
}

func (p *Publisher) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	return p.publish(ctx, m.ID, EventContactSubmitted, m.ReceivedAt, m)
}

func (p *Publisher) publish(ctx context.Context, key, event string, at time.Time, data any) error {
	value, err := json.Marshal(Event{Event: event, Timestamp: at, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
