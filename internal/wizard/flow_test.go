package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitQuote(ctx context.Context, d entity.QuoteDraft) (string, error) {
	args := m.Called(ctx, d)
	return args.String(0), args.Error(1)
}

func contactPatch() Patch {
	return Patch{
		FirstName: Str("Al"),
		LastName:  Str("Bo"),
		Email:     Str("a@b.com"),
		Phone:     Str("5551234567"),
		Address:   Str("123 Main St"),
		City:      Str("Austin"),
		State:     Str("TX"),
		ZipCode:   Str("78701"),
	}
}

// walk takes a fresh flow to the review step for the given product.
func walk(t *testing.T, f *Flow, product string) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []Patch{{InsuranceType: Str(product)}, contactPatch(), {}, {}} {
		errs, err := f.Advance(ctx, p)
		require.NoError(t, err)
		require.Empty(t, errs)
	}
	require.Equal(t, schema.StepReview, f.Store.State().CurrentStep)
}

func TestAdvanceBlocksInvalidStep(t *testing.T) {
	f := NewFlow(NewStore(nil, nil), nil, nil)

	errs, err := f.Advance(context.Background(), Patch{})

	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "insuranceType", errs[0].Field)
	assert.Equal(t, 1, f.Store.State().CurrentStep)
}

func TestAdvanceDoesNotSaveRejectedInput(t *testing.T) {
	ctx := context.Background()
	f := NewFlow(NewStore(nil, nil), nil, nil)
	_, err := f.Advance(ctx, Patch{InsuranceType: Str("home")})
	require.NoError(t, err)

	p := contactPatch()
	p.ZipCode = Str("123")
	errs, err := f.Advance(ctx, p)

	require.NoError(t, err)
	assert.True(t, errs.Has("zipCode"))
	assert.Equal(t, schema.StepContact, f.Store.State().CurrentStep)
	assert.Empty(t, f.Store.State().Draft.FirstName)
}

func TestAutoDetailsStepRequiresNothing(t *testing.T) {
	f := NewFlow(NewStore(nil, nil), nil, nil)

	walk(t, f, "auto")
}

func TestBackAndEdit(t *testing.T) {
	f := NewFlow(NewStore(nil, nil), nil, nil)
	walk(t, f, "life")

	require.NoError(t, f.Edit(schema.StepContact))
	assert.Equal(t, schema.StepContact, f.Store.State().CurrentStep)

	f.Back()
	f.Back()
	assert.Equal(t, schema.StepProduct, f.Store.State().CurrentStep)
	assert.Error(t, f.Edit(9))
}

func TestSubmitRequiresConsent(t *testing.T) {
	gw := new(MockSubmitter)
	f := NewFlow(NewStore(nil, nil), gw, nil)
	walk(t, f, "home")

	_, err := f.Submit(context.Background(), false)

	assert.ErrorIs(t, err, ErrConsentRequired)
	gw.AssertNotCalled(t, "SubmitQuote", mock.Anything, mock.Anything)
}

func TestSubmitSendsConsentAndEmptyHoneypot(t *testing.T) {
	ctx := context.Background()
	gw := new(MockSubmitter)
	store := NewStore(nil, nil)
	f := NewFlow(store, gw, nil)
	walk(t, f, "home")
	require.NoError(t, store.UpdateFormData(ctx, Patch{Honeypot: Str("bot")}))

	gw.On("SubmitQuote", ctx, mock.MatchedBy(func(d entity.QuoteDraft) bool {
		return bool(d.Consent) && d.Honeypot == "" && d.InsuranceType == "home"
	})).Return("q-1", nil)

	id, err := f.Submit(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "q-1", id)
	gw.AssertExpectations(t)

	store.OpenModal()
	require.NoError(t, f.Complete(ctx))
	st := store.State()
	assert.False(t, st.IsModalOpen)
	assert.Equal(t, 1, st.CurrentStep)
	assert.Equal(t, entity.QuoteDraft{}, st.Draft)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()
	gw := new(MockSubmitter)
	f := NewFlow(NewStore(nil, nil), gw, nil)
	walk(t, f, "flood")
	gw.On("SubmitQuote", ctx, mock.Anything).Return("", &SubmitError{Status: 500, Message: "Failed to save quote request. Please try again."})

	_, err := f.Submit(ctx, true)

	var se *SubmitError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 500, se.Status)
	assert.Equal(t, "flood", f.Store.State().Draft.InsuranceType)
	assert.Equal(t, schema.StepReview, f.Store.State().CurrentStep)
	assert.False(t, f.Submitting())
}

func TestSubmitRejectsConcurrentCall(t *testing.T) {
	ctx := context.Background()
	gw := new(MockSubmitter)
	f := NewFlow(NewStore(nil, nil), gw, nil)
	walk(t, f, "boat")

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("SubmitQuote", ctx, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return("q-1", nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(ctx, true)
		done <- err
	}()
	<-started

	_, err := f.Submit(ctx, true)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	assert.NoError(t, <-done)
}
