package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type brokenPersister struct{}

func (brokenPersister) Load(context.Context) (entity.QuoteDraft, bool, error) {
	return entity.QuoteDraft{}, false, errors.New("disk full")
}

func (brokenPersister) Save(context.Context, entity.QuoteDraft) error {
	return errors.New("disk full")
}

func TestStoreStartsAtStepOne(t *testing.T) {
	s := NewStore(nil, nil)

	st := s.State()
	assert.Equal(t, 1, st.CurrentStep)
	assert.False(t, st.IsModalOpen)
	assert.Equal(t, entity.QuoteDraft{}, st.Draft)
}

func TestUpdateFormDataMergesShallowly(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, nil)

	require.NoError(t, s.UpdateFormData(ctx, Patch{InsuranceType: Str("auto"), FirstName: Str("Al")}))
	require.NoError(t, s.UpdateFormData(ctx, Patch{LastName: Str("Bo")}))

	d := s.State().Draft
	assert.Equal(t, "auto", d.InsuranceType)
	assert.Equal(t, "Al", d.FirstName)
	assert.Equal(t, "Bo", d.LastName)

	require.NoError(t, s.UpdateFormData(ctx, Patch{FirstName: Str("")}))
	assert.Empty(t, s.State().Draft.FirstName)
	assert.Equal(t, "Bo", s.State().Draft.LastName)
}

func TestPatchApplyDoesNotModifyInput(t *testing.T) {
	in := entity.QuoteDraft{City: "Austin"}

	out := Patch{City: Str("Dallas"), Consent: Bool(true)}.Apply(in)

	assert.Equal(t, "Austin", in.City)
	assert.Equal(t, "Dallas", out.City)
	assert.True(t, bool(out.Consent))
}

func TestStepNavigationIsClamped(t *testing.T) {
	s := NewStore(nil, nil)

	s.PrevStep()
	assert.Equal(t, 1, s.State().CurrentStep)

	for i := 0; i < 10; i++ {
		s.NextStep()
	}
	assert.Equal(t, schema.StepCount, s.State().CurrentStep)
}

func TestSetCurrentStepRange(t *testing.T) {
	s := NewStore(nil, nil)

	require.NoError(t, s.SetCurrentStep(3))
	assert.Equal(t, 3, s.State().CurrentStep)

	assert.ErrorIs(t, s.SetCurrentStep(0), ErrStepOutOfRange)
	assert.ErrorIs(t, s.SetCurrentStep(6), ErrStepOutOfRange)
	assert.Equal(t, 3, s.State().CurrentStep)
}

func TestCloseModalKeepsDraft(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil, nil)
	s.OpenModal()
	require.NoError(t, s.UpdateFormData(ctx, Patch{Email: Str("a@b.com")}))

	s.CloseModal()

	assert.False(t, s.State().IsModalOpen)
	assert.Equal(t, "a@b.com", s.State().Draft.Email)
}

func TestResetForm(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	s := NewStore(p, nil)
	require.NoError(t, s.UpdateFormData(ctx, Patch{Email: Str("a@b.com")}))
	require.NoError(t, s.SetCurrentStep(4))

	require.NoError(t, s.ResetForm(ctx))

	assert.Equal(t, 1, s.State().CurrentStep)
	assert.Equal(t, entity.QuoteDraft{}, s.State().Draft)
	saved, ok, err := p.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.QuoteDraft{}, saved)
}

func TestDraftSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	p, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer p.Close()

	first := NewStore(p, nil)
	first.OpenModal()
	require.NoError(t, first.SetCurrentStep(3))
	require.NoError(t, first.UpdateFormData(ctx, Patch{
		InsuranceType: Str("home"),
		ZipCode:       Str("78701"),
		Consent:       Bool(true),
	}))

	second := NewStore(p, nil)
	require.NoError(t, second.Load(ctx))

	st := second.State()
	assert.Equal(t, first.State().Draft, st.Draft)
	assert.Equal(t, 1, st.CurrentStep)
	assert.False(t, st.IsModalOpen)
}

func TestLoadWithNothingSaved(t *testing.T) {
	p, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer p.Close()

	s := NewStore(p, nil)
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, entity.QuoteDraft{}, s.State().Draft)
}

func TestPersistFailureIsReported(t *testing.T) {
	s := NewStore(brokenPersister{}, nil)

	err := s.UpdateFormData(context.Background(), Patch{City: Str("Austin")})

	assert.Error(t, err)
	assert.Equal(t, "Austin", s.State().Draft.City)
	assert.Error(t, s.Load(context.Background()))

	assert.Error(t, s.ResetForm(context.Background()))
	assert.Empty(t, s.State().Draft.City)
}
