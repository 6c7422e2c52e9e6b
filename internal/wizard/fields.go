package wizard

import (
	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindSelect
	KindTextArea
)

type Option struct {
	Value string
	Label string
}

// Field describes one input of a step and how it maps onto the draft.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Kind        FieldKind
	Options     []Option

	get func(entity.QuoteDraft) string
	set func(*Patch, string)
}

func (f Field) Value(d entity.QuoteDraft) string { return f.get(d) }

// Set records v for this field in p.
func (f Field) Set(p *Patch, v string) { f.set(p, v) }

var StepTitles = [schema.StepCount]string{
	"Insurance Type",
	"Personal Info",
	"Details",
	"Coverage",
	"Review",
}

// USStates lists the state picker values. Texas comes first.
var USStates = []string{
	"TX", "AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA",
	"KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM",
	"NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

var (
	PropertyTypes = []Option{
		{"single-family", "Single Family"},
		{"condo", "Condo"},
		{"townhouse", "Townhouse"},
		{"apartment", "Apartment"},
	}
	EmployeeCounts = []Option{
		{"1-5", "1-5"},
		{"6-10", "6-10"},
		{"11-25", "11-25"},
		{"26-50", "26-50"},
		{"50+", "50+"},
	}
	AnnualRevenues = []Option{
		{"0-100k", "$0 - $100,000"},
		{"100k-500k", "$100,000 - $500,000"},
		{"500k-1m", "$500,000 - $1M"},
		{"1m+", "$1M+"},
	}
	CoverageAmounts = []Option{
		{"50k", "$50,000"},
		{"100k", "$100,000"},
		{"250k", "$250,000"},
		{"500k", "$500,000"},
		{"1m", "$1,000,000"},
		{"custom", "Custom Amount"},
	}
	Deductibles = []Option{
		{"250", "$250"},
		{"500", "$500"},
		{"1000", "$1,000"},
		{"2500", "$2,500"},
		{"5000", "$5,000"},
	}
)

func productOptions() []Option {
	products := entity.Catalog()
	out := make([]Option, len(products))
	for i, p := range products {
		out[i] = Option{Value: string(p.Type), Label: p.Label}
	}
	return out
}

func stateOptions() []Option {
	out := make([]Option, len(USStates))
	for i, s := range USStates {
		out[i] = Option{Value: s, Label: s}
	}
	return out
}

var (
	insuranceTypeField = Field{Key: "insuranceType", Label: "Insurance Type", Kind: KindSelect,
		get: func(d entity.QuoteDraft) string { return d.InsuranceType },
		set: func(p *Patch, v string) { p.InsuranceType = Str(v) }}

	contactFields = []Field{
		{Key: "firstName", Label: "First Name", Placeholder: "John",
			get: func(d entity.QuoteDraft) string { return d.FirstName },
			set: func(p *Patch, v string) { p.FirstName = Str(v) }},
		{Key: "lastName", Label: "Last Name", Placeholder: "Doe",
			get: func(d entity.QuoteDraft) string { return d.LastName },
			set: func(p *Patch, v string) { p.LastName = Str(v) }},
		{Key: "email", Label: "Email", Placeholder: "john.doe@example.com",
			get: func(d entity.QuoteDraft) string { return d.Email },
			set: func(p *Patch, v string) { p.Email = Str(v) }},
		{Key: "phone", Label: "Phone Number", Placeholder: "(555) 123-4567",
			get: func(d entity.QuoteDraft) string { return d.Phone },
			set: func(p *Patch, v string) { p.Phone = Str(v) }},
		{Key: "address", Label: "Street Address", Placeholder: "123 Main Street",
			get: func(d entity.QuoteDraft) string { return d.Address },
			set: func(p *Patch, v string) { p.Address = Str(v) }},
		{Key: "city", Label: "City", Placeholder: "Austin",
			get: func(d entity.QuoteDraft) string { return d.City },
			set: func(p *Patch, v string) { p.City = Str(v) }},
		{Key: "state", Label: "State", Kind: KindSelect, Options: stateOptions(),
			get: func(d entity.QuoteDraft) string { return d.State },
			set: func(p *Patch, v string) { p.State = Str(v) }},
		{Key: "zipCode", Label: "ZIP Code", Placeholder: "78701",
			get: func(d entity.QuoteDraft) string { return d.ZipCode },
			set: func(p *Patch, v string) { p.ZipCode = Str(v) }},
	}

	vehicleFields = []Field{
		{Key: "vehicleYear", Label: "Vehicle Year", Placeholder: "2020",
			get: func(d entity.QuoteDraft) string { return d.VehicleYear },
			set: func(p *Patch, v string) { p.VehicleYear = Str(v) }},
		{Key: "vehicleMake", Label: "Vehicle Make", Placeholder: "Toyota",
			get: func(d entity.QuoteDraft) string { return d.VehicleMake },
			set: func(p *Patch, v string) { p.VehicleMake = Str(v) }},
		{Key: "vehicleModel", Label: "Vehicle Model", Placeholder: "Camry",
			get: func(d entity.QuoteDraft) string { return d.VehicleModel },
			set: func(p *Patch, v string) { p.VehicleModel = Str(v) }},
	}

	propertyFields = []Field{
		{Key: "propertyType", Label: "Property Type", Kind: KindSelect, Options: PropertyTypes,
			get: func(d entity.QuoteDraft) string { return d.PropertyType },
			set: func(p *Patch, v string) { p.PropertyType = Str(v) }},
		{Key: "yearBuilt", Label: "Year Built", Placeholder: "2000",
			get: func(d entity.QuoteDraft) string { return d.YearBuilt },
			set: func(p *Patch, v string) { p.YearBuilt = Str(v) }},
	}

	businessFields = []Field{
		{Key: "businessType", Label: "Business Type", Placeholder: "Retail, Restaurant, etc.",
			get: func(d entity.QuoteDraft) string { return d.BusinessType },
			set: func(p *Patch, v string) { p.BusinessType = Str(v) }},
		{Key: "employeeCount", Label: "Number of Employees", Kind: KindSelect, Options: EmployeeCounts,
			get: func(d entity.QuoteDraft) string { return d.EmployeeCount },
			set: func(p *Patch, v string) { p.EmployeeCount = Str(v) }},
		{Key: "annualRevenue", Label: "Annual Revenue", Kind: KindSelect, Options: AnnualRevenues,
			get: func(d entity.QuoteDraft) string { return d.AnnualRevenue },
			set: func(p *Patch, v string) { p.AnnualRevenue = Str(v) }},
	}

	coverageFields = []Field{
		{Key: "coverageAmount", Label: "Desired Coverage Amount (Optional)", Kind: KindSelect, Options: CoverageAmounts,
			get: func(d entity.QuoteDraft) string { return d.CoverageAmount },
			set: func(p *Patch, v string) { p.CoverageAmount = Str(v) }},
		{Key: "deductible", Label: "Preferred Deductible (Optional)", Kind: KindSelect, Options: Deductibles,
			get: func(d entity.QuoteDraft) string { return d.Deductible },
			set: func(p *Patch, v string) { p.Deductible = Str(v) }},
		{Key: "startDate", Label: "Desired Start Date (Optional)", Placeholder: "YYYY-MM-DD",
			get: func(d entity.QuoteDraft) string { return d.StartDate },
			set: func(p *Patch, v string) { p.StartDate = Str(v) }},
		{Key: "additionalNotes", Label: "Additional Notes or Questions (Optional)", Kind: KindTextArea,
			Placeholder: "Tell us anything else we should know...",
			get:         func(d entity.QuoteDraft) string { return d.AdditionalNotes },
			set:         func(p *Patch, v string) { p.AdditionalNotes = Str(v) }},
	}
)

// StepFields lists the inputs of a step. Step 3 depends on the insurance
// type and is empty for products with no extra details. The review step has
// no inputs besides consent.
func StepFields(step int, insuranceType string) []Field {
	switch step {
	case schema.StepProduct:
		f := insuranceTypeField
		f.Options = productOptions()
		return []Field{f}
	case schema.StepContact:
		return contactFields
	case schema.StepDetails:
		switch entity.VariantFor(insuranceType) {
		case entity.VariantVehicle:
			return vehicleFields
		case entity.VariantProperty:
			return propertyFields
		case entity.VariantBusiness:
			return businessFields
		}
		return nil
	case schema.StepCoverage:
		return coverageFields
	}
	return nil
}
