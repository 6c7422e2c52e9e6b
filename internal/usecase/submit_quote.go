package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type SubmitQuoteUseCase struct {
	Repo     entity.QuoteRepositoryInterface
	Notifier QuoteNotifier
	Clock    Clock
	IDs      IDGenerator
	Logger   *zap.Logger
}

func NewSubmitQuoteUseCase(
	repo entity.QuoteRepositoryInterface,
	notifier QuoteNotifier,
	clock Clock,
	ids IDGenerator,
	logger *zap.Logger,
) *SubmitQuoteUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitQuoteUseCase{
		Repo:     repo,
		Notifier: notifier,
		Clock:    clock,
		IDs:      ids,
		Logger:   logger,
	}
}

// Execute runs a decoded draft through spam check, validation, storage and
// notification, in that order. Validation failures come back as schema.Errors
// and storage failures as *TechnicalError. Once the quote is stored the call
// succeeds whatever the notifier does.
func (uc *SubmitQuoteUseCase) Execute(ctx context.Context, draft entity.QuoteDraft) (*SubmitOutput, error) {
	if draft.IsSpam() {
		uc.Logger.Info("quote discarded by honeypot", zap.String("insurance_type", draft.InsuranceType))
		return &SubmitOutput{Discarded: true}, nil
	}

	if err := schema.ValidateQuote(draft); err != nil {
		return nil, err
	}

	q := entity.NewQuoteSubmission(uc.IDs.NewID(), uc.Clock.Now(), draft)
	if err := uc.Repo.Create(ctx, q); err != nil {
		return nil, &TechnicalError{
			Code:    CodePersistFailed,
			Message: "failed to save quote request",
			Err:     err,
		}
	}

	uc.Logger.Info("quote stored",
		zap.String("quote_id", q.ID),
		zap.String("insurance_type", q.InsuranceType),
	)

	if uc.Notifier != nil {
		notifySafely(uc.Logger.With(zap.String("quote_id", q.ID)), func() error {
			return uc.Notifier.NotifyQuote(ctx, q)
		})
	}

	return &SubmitOutput{ID: q.ID}, nil
}

// notifySafely runs fn and logs whatever goes wrong, panics included.
func notifySafely(logger *zap.Logger, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("notifier panicked", zap.Error(fmt.Errorf("%v", r)))
		}
	}()
	if err := fn(); err != nil {
		logger.Warn("notification failed", zap.Error(err))
	}
}
