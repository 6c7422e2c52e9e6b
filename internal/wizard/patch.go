package wizard

import "github.com/tgiagency/quote-funnel/internal/entity"

// Patch is a partial draft. Nil fields are left alone by Apply, so a patch
// can clear a field by pointing at "".
type Patch struct {
	InsuranceType *string

	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string

	PropertyType  *string
	YearBuilt     *string
	VehicleMake   *string
	VehicleModel  *string
	VehicleYear   *string
	BusinessType  *string
	EmployeeCount *string
	AnnualRevenue *string

	CoverageAmount  *string
	Deductible      *string
	StartDate       *string
	AdditionalNotes *string

	Consent  *bool
	Honeypot *string
}

// Str is a helper for building patches.
func Str(s string) *string { return &s }

func Bool(b bool) *bool { return &b }

// Apply returns d with every non-nil field of p copied over. d is not
// modified.
func (p Patch) Apply(d entity.QuoteDraft) entity.QuoteDraft {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.InsuranceType, p.InsuranceType)
	set(&d.FirstName, p.FirstName)
	set(&d.LastName, p.LastName)
	set(&d.Email, p.Email)
	set(&d.Phone, p.Phone)
	set(&d.Address, p.Address)
	set(&d.City, p.City)
	set(&d.State, p.State)
	set(&d.ZipCode, p.ZipCode)
	set(&d.PropertyType, p.PropertyType)
	set(&d.YearBuilt, p.YearBuilt)
	set(&d.VehicleMake, p.VehicleMake)
	set(&d.VehicleModel, p.VehicleModel)
	set(&d.VehicleYear, p.VehicleYear)
	set(&d.BusinessType, p.BusinessType)
	set(&d.EmployeeCount, p.EmployeeCount)
	set(&d.AnnualRevenue, p.AnnualRevenue)
	set(&d.CoverageAmount, p.CoverageAmount)
	set(&d.Deductible, p.Deductible)
	set(&d.StartDate, p.StartDate)
	set(&d.AdditionalNotes, p.AdditionalNotes)
	set(&d.Honeypot, p.Honeypot)
	if p.Consent != nil {
		d.Consent = entity.Consent(*p.Consent)
	}
	return d
}
