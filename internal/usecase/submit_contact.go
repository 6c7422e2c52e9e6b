package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type SubmitContactUseCase struct {
	Repo     entity.ContactRepositoryInterface
	Notifier ContactNotifier
	Clock    Clock
	IDs      IDGenerator
	Logger   *zap.Logger
}

func NewSubmitContactUseCase(
	repo entity.ContactRepositoryInterface,
	notifier ContactNotifier,
	clock Clock,
	ids IDGenerator,
	logger *zap.Logger,
) *SubmitContactUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitContactUseCase{
		Repo:     repo,
		Notifier: notifier,
		Clock:    clock,
		IDs:      ids,
		Logger:   logger,
	}
}

// Execute validates, stores and then notifies. The contact form has no
// honeypot.
func (uc *SubmitContactUseCase) Execute(ctx context.Context, req entity.ContactRequest) (*SubmitOutput, error) {
	if err := schema.ValidateContact(req); err != nil {
		return nil, err
	}

	m := entity.NewContactMessage(uc.IDs.NewID(), uc.Clock.Now(), req)
	if err := uc.Repo.Create(ctx, m); err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistFailed,
			Message: "failed to save contact message",
			Err:     err,
		}
	}

	uc.Logger.Info("contact message stored", zap.String("contact_id", m.ID))

	if uc.Notifier != nil {
		notifySafely(uc.Logger.With(zap.String("contact_id", m.ID)), func() error {
			return uc.Notifier.NotifyContact(ctx, m)
		})
	}

	return &SubmitOutput{ID: m.ID}, nil
}
