package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

type QuoteNotifier interface {
	NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error
}

type ContactNotifier interface {
	NotifyContact(ctx context.Context, m *entity.ContactMessage) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker drains the notification queue into the real channels.
type Worker struct {
	Channel consumer
	Quote   QuoteNotifier
	Contact ContactNotifier
	Timeout time.Duration
	Logger  *zap.Logger
}

func NewWorker(ch consumer, quote QuoteNotifier, contact ContactNotifier, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Channel: ch,
		Quote:   quote,
		Contact: contact,
		Timeout: 30 * time.Second,
		Logger:  logger,
	}
}

// Start consumes queueName until ctx ends or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.Logger.Info("notification worker waiting", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel for %s closed", queueName)
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks on success. Malformed or failed messages are rejected without
// requeue so they go to the dead letter queue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	logger := w.Logger.With(zap.String("message_id", d.MessageId))

	var payload NotificationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		logger.Error("malformed notification payload", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	pctx, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()

	if err := w.process(pctx, payload); err != nil {
		logger.Error("notification failed", zap.String("kind", payload.Kind), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	logger.Debug("notification delivered", zap.String("kind", payload.Kind))
	_ = d.Ack(false)
}

func (w *Worker) process(ctx context.Context, p NotificationPayload) error {
	switch p.Kind {
	case KindQuote:
		if p.Quote == nil {
			return fmt.Errorf("quote payload without quote")
		}
		return w.Quote.NotifyQuote(ctx, p.Quote)
	case KindContact:
		if p.Contact == nil {
			return fmt.Errorf("contact payload without contact")
		}
		return w.Contact.NotifyContact(ctx, p.Contact)
	default:
		// Unknown kinds are acked so they do not pile up.
		w.Logger.Warn("unknown notification kind", zap.String("kind", p.Kind))
		return nil
	}
}
