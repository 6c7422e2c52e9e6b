package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

func TestReviewMinimalDraft(t *testing.T) {
	groups := Review(entity.QuoteDraft{InsuranceType: "bonds", FirstName: "Al", LastName: "Bo"})

	require.Len(t, groups, 2)
	assert.Equal(t, "Surety Bonds", groups[0].Lines[0].Value)
	assert.Equal(t, schema.StepContact, groups[1].Step)
	assert.Equal(t, "Al Bo", groups[1].Lines[0].Value)
}

func TestReviewOptionalGroups(t *testing.T) {
	groups := Review(entity.QuoteDraft{
		InsuranceType:   "auto",
		VehicleYear:     "2020",
		VehicleMake:     "Toyota",
		Deductible:      "500",
		AdditionalNotes: "Two drivers",
	})

	require.Len(t, groups, 5)
	assert.Equal(t, "Additional Details", groups[2].Title)
	assert.Equal(t, "2020 Toyota", groups[2].Lines[0].Value)
	assert.Equal(t, schema.StepCoverage, groups[3].Step)
	assert.Equal(t, "$500", groups[3].Lines[0].Value)
	assert.Zero(t, groups[4].Step)
}

func TestStepFieldsByProduct(t *testing.T) {
	assert.Len(t, StepFields(schema.StepDetails, "auto"), 3)
	assert.Len(t, StepFields(schema.StepDetails, "renters"), 2)
	assert.Len(t, StepFields(schema.StepDetails, "landlord"), 3)
	assert.Empty(t, StepFields(schema.StepDetails, "life"))
	assert.Empty(t, StepFields(schema.StepReview, "auto"))

	product := StepFields(schema.StepProduct, "")
	require.Len(t, product, 1)
	assert.Len(t, product[0].Options, 9)

	state := StepFields(schema.StepContact, "")[6]
	assert.Equal(t, "state", state.Key)
	assert.Equal(t, "TX", state.Options[0].Value)
	assert.Len(t, state.Options, 50)
}

func TestFieldAccessors(t *testing.T) {
	var p Patch
	for _, f := range StepFields(schema.StepContact, "") {
		f.Set(&p, "x-"+f.Key)
	}
	d := p.Apply(entity.QuoteDraft{})

	assert.Equal(t, "x-zipCode", d.ZipCode)
	for _, f := range StepFields(schema.StepContact, "") {
		assert.Equal(t, "x-"+f.Key, f.Value(d))
	}
}
