package wizard

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

var (
	ErrConsentRequired = errors.New("wizard: consent required")
	ErrSubmitInFlight  = errors.New("wizard: submission already in progress")
)

// ConsentMessage is what the review step shows for ErrConsentRequired.
const ConsentMessage = "You must agree to the privacy policy and terms to continue."

// AlternateContact is shown with every submission failure.
const AlternateContact = "You can also reach us at (555) 555-5555 or info@tgiagency.com."

// Submitter sends a finished draft to the gateway.
type Submitter interface {
	SubmitQuote(ctx context.Context, d entity.QuoteDraft) (string, error)
}

// Flow drives the store one step at a time. Input for a step is only merged
// into the draft once that step validates.
type Flow struct {
	Store    *Store
	Gateway  Submitter
	Logger   *zap.Logger
	inFlight atomic.Bool
}

func NewFlow(store *Store, gateway Submitter, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{Store: store, Gateway: gateway, Logger: logger}
}

// Advance validates p against the current step. On success the patch is
// saved and the wizard moves on; otherwise the field errors come back and
// nothing changes.
func (f *Flow) Advance(ctx context.Context, p Patch) (schema.Errors, error) {
	st := f.Store.State()
	if st.CurrentStep >= schema.StepReview {
		return nil, nil
	}
	candidate := p.Apply(st.Draft)
	if err := schema.ValidateStep(st.CurrentStep, candidate); err != nil {
		if errs, ok := schema.AsErrors(err); ok {
			return errs, nil
		}
		return nil, err
	}
	if err := f.Store.UpdateFormData(ctx, p); err != nil {
		return nil, err
	}
	f.Store.NextStep()
	return nil, nil
}

// Back leaves the current step without saving what was typed.
func (f *Flow) Back() {
	f.Store.PrevStep()
}

// Edit jumps to a step from the review screen.
func (f *Flow) Edit(step int) error {
	return f.Store.SetCurrentStep(step)
}

// Submit sends the draft with consent set and the honeypot cleared. The
// draft stays untouched when the gateway refuses it; call Complete once the
// confirmation has been shown.
func (f *Flow) Submit(ctx context.Context, consent bool) (string, error) {
	if !consent {
		return "", ErrConsentRequired
	}
	if !f.inFlight.CompareAndSwap(false, true) {
		return "", ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	if err := f.Store.UpdateFormData(ctx, Patch{Consent: Bool(true), Honeypot: Str("")}); err != nil {
		return "", err
	}

	draft := f.Store.State().Draft
	id, err := f.Gateway.SubmitQuote(ctx, draft)
	if err != nil {
		f.Logger.Warn("quote submission failed", zap.Error(err))
		return "", err
	}
	f.Logger.Info("quote submitted", zap.String("id", id), zap.String("insurance_type", draft.InsuranceType))
	return id, nil
}

// Submitting reports whether a submission is in flight.
func (f *Flow) Submitting() bool {
	return f.inFlight.Load()
}

// Complete clears the wizard after a successful submission.
func (f *Flow) Complete(ctx context.Context) error {
	f.Store.CloseModal()
	return f.Store.ResetForm(ctx)
}
