package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

func validHomeDraft() entity.QuoteDraft {
	return entity.QuoteDraft{
		InsuranceType: "home",
		FirstName:     "Al",
		LastName:      "Bo",
		Email:         "a@b.com",
		Phone:         "5551234567",
		Address:       "123 Main St",
		City:          "Austin",
		State:         "TX",
		ZipCode:       "78701",
		Consent:       true,
	}
}

func TestValidateQuoteAcceptsValidDraft(t *testing.T) {
	assert.NoError(t, ValidateQuote(validHomeDraft()))
}

func TestValidateQuoteRejectsShortZip(t *testing.T) {
	d := validHomeDraft()
	d.ZipCode = "123"

	errs, ok := AsErrors(ValidateQuote(d))
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "zipCode", errs[0].Field)
	assert.Equal(t, "Invalid ZIP code", errs[0].Message)
}

func TestValidateQuoteZipFormats(t *testing.T) {
	cases := map[string]bool{
		"78701":      true,
		"78701-1234": true,
		"7870":       false,
		"78701-12":   false,
		"787011234":  false,
		"ABCDE":      false,
		"":           false,
	}
	for zip, ok := range cases {
		d := validHomeDraft()
		d.ZipCode = zip
		err := ValidateQuote(d)
		if ok {
			assert.NoError(t, err, zip)
		} else {
			assert.Error(t, err, zip)
		}
	}
}

func TestValidateQuoteConsentMustBeTrue(t *testing.T) {
	d := validHomeDraft()
	d.Consent = false

	errs, ok := AsErrors(ValidateQuote(d))
	require.True(t, ok)
	assert.Equal(t, "You must agree to the privacy policy and terms", errs.Message("consent"))
	assert.Len(t, errs, 1)
}

func TestValidateQuoteReportsEveryField(t *testing.T) {
	errs, ok := AsErrors(ValidateQuote(entity.QuoteDraft{}))
	require.True(t, ok)

	for _, field := range []string{
		"insuranceType", "firstName", "lastName", "email", "phone",
		"address", "city", "state", "zipCode", "consent",
	} {
		assert.True(t, errs.Has(field), field)
	}
	assert.False(t, errs.Has("vehicleMake"))
	assert.False(t, errs.Has("coverageAmount"))
	assert.False(t, errs.Has("honeypot"))
}

func TestValidateQuoteStateIsFreeText(t *testing.T) {
	d := validHomeDraft()
	d.State = "Texas"
	assert.NoError(t, ValidateQuote(d))

	d.State = "T"
	errs, ok := AsErrors(ValidateQuote(d))
	require.True(t, ok)
	assert.Equal(t, "State is required", errs.Message("state"))
}

func TestValidateQuoteInsuranceTypeIsNotAnEnum(t *testing.T) {
	d := validHomeDraft()
	d.InsuranceType = "pet"
	assert.NoError(t, ValidateQuote(d))
}

func TestValidatePhoneAcceptsFormatting(t *testing.T) {
	d := validHomeDraft()
	d.Phone = "(555) 123-4567"
	assert.NoError(t, ValidateQuote(d))

	d.Phone = "555-1234"
	errs, ok := AsErrors(ValidateQuote(d))
	require.True(t, ok)
	assert.Equal(t, "Phone number must be at least 10 digits", errs.Message("phone"))
}

func TestValidateStepOneRequiresSelection(t *testing.T) {
	errs, ok := AsErrors(ValidateStep(StepProduct, entity.QuoteDraft{}))
	require.True(t, ok)
	assert.Equal(t, "Please select an insurance type", errs.Message("insuranceType"))

	assert.NoError(t, ValidateStep(StepProduct, entity.QuoteDraft{InsuranceType: "auto"}))
}

func TestValidateStepThreeAutoNeedsNothing(t *testing.T) {
	d := entity.QuoteDraft{InsuranceType: "auto"}
	assert.NoError(t, ValidateStep(StepDetails, d))

	d.VehicleMake = "Toyota"
	assert.NoError(t, ValidateStep(StepDetails, d))

	d = entity.QuoteDraft{InsuranceType: "auto", VehicleYear: "2019"}
	assert.NoError(t, ValidateStep(StepDetails, d))
}

func TestValidateStepTwoIgnoresOtherSteps(t *testing.T) {
	d := validHomeDraft()
	d.InsuranceType = ""
	d.Consent = false
	assert.NoError(t, ValidateStep(StepContact, d))
}

func TestValidateStepUnknown(t *testing.T) {
	err := ValidateStep(9, entity.QuoteDraft{})
	require.Error(t, err)
	_, ok := AsErrors(err)
	assert.False(t, ok)
}

func TestValidateContact(t *testing.T) {
	ok := entity.ContactRequest{
		Name:    "Jo",
		Email:   "jo@example.com",
		Phone:   "5551234567",
		Message: "Please call me back",
	}
	assert.NoError(t, ValidateContact(ok))

	bad := ok
	bad.Message = "short"
	bad.Name = "J"
	errs, isErrs := AsErrors(ValidateContact(bad))
	require.True(t, isErrs)
	assert.Equal(t, "Name must be at least 2 characters", errs.Message("name"))
	assert.Equal(t, "Message must be at least 10 characters", errs.Message("message"))
	assert.Len(t, errs, 2)
}

func TestErrorsErrorString(t *testing.T) {
	errs := Errors{{Field: "zipCode", Message: "Invalid ZIP code"}}
	assert.Equal(t, "validation failed: zipCode: Invalid ZIP code", errs.Error())
}
