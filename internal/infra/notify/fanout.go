// Package notify combines notification channels and moves delivery off the
// request path.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

type QuoteNotifier interface {
	NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error
}

type ContactNotifier interface {
	NotifyContact(ctx context.Context, m *entity.ContactMessage) error
}

// Channel is one named destination. Either side may be nil when the channel
// does not carry that form, as the webhook does not carry contacts.
type Channel struct {
	Name    string
	Quote   QuoteNotifier
	Contact ContactNotifier
}

// Fanout delivers to every channel and joins the failures. One channel
// failing does not stop the others.
type Fanout struct {
	channels  []Channel
	onFailure func(channel string)
}

type FanoutOption func(*Fanout)

// OnFailure is called with the channel name for every failed delivery.
func OnFailure(fn func(channel string)) FanoutOption {
	return func(f *Fanout) { f.onFailure = fn }
}

func NewFanout(channels []Channel, opts ...FanoutOption) *Fanout {
	f := &Fanout{channels: channels, onFailure: func(string) {}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fanout) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	var errs []error
	for _, c := range f.channels {
		if c.Quote == nil {
			continue
		}
		if err := c.Quote.NotifyQuote(ctx, q); err != nil {
			f.onFailure(c.Name)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	var errs []error
	for _, c := range f.channels {
		if c.Contact == nil {
			continue
		}
		if err := c.Contact.NotifyContact(ctx, m); err != nil {
			f.onFailure(c.Name)
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Names lists the configured channels in order.
func (f *Fanout) Names() []string {
	names := make([]string, len(f.channels))
	for i, c := range f.channels {
		names[i] = c.Name
	}
	return names
}
