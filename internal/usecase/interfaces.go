package usecase

import (
	"context"
	"time"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// QuoteNotifier tells staff about a stored quote. Errors are logged by the
// caller and never reach the visitor.
type QuoteNotifier interface {
	NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error
}

type ContactNotifier interface {
	NotifyContact(ctx context.Context, m *entity.ContactMessage) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}
