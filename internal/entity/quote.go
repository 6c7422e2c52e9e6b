package entity

import (
	"bytes"
	"context"
	"strings"
	"time"
)

// QuoteDraft is the in-progress quote request. Field names on the wire are the
// camelCase keys the website has always posted.
type QuoteDraft struct {
	InsuranceType string `json:"insuranceType"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`

	// Product specific. Which group applies depends on InsuranceType.
	PropertyType  string `json:"propertyType,omitempty"`
	YearBuilt     string `json:"yearBuilt,omitempty"`
	VehicleMake   string `json:"vehicleMake,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehicleYear   string `json:"vehicleYear,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	EmployeeCount string `json:"employeeCount,omitempty"`
	AnnualRevenue string `json:"annualRevenue,omitempty"`

	CoverageAmount  string `json:"coverageAmount,omitempty"`
	Deductible      string `json:"deductible,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`

	Consent  Consent `json:"consent"`
	Honeypot string  `json:"honeypot,omitempty"`
}

// IsSpam reports whether the hidden trap field carries anything a person could not have typed.
func (d QuoteDraft) IsSpam() bool {
	return strings.TrimSpace(d.Honeypot) != ""
}

// Consent only becomes true for the JSON literal true. Strings, numbers and
// null all decode to false so the schema can report a consent error instead
// of the decoder failing the whole body.
type Consent bool

func (c *Consent) UnmarshalJSON(b []byte) error {
	*c = Consent(bytes.Equal(bytes.TrimSpace(b), []byte("true")))
	return nil
}

// QuoteSubmission is a draft that passed the submission schema. Once stored it
// is never updated.
type QuoteSubmission struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`

	InsuranceType string `json:"insuranceType"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`

	PropertyType  string `json:"propertyType,omitempty"`
	YearBuilt     string `json:"yearBuilt,omitempty"`
	VehicleMake   string `json:"vehicleMake,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehicleYear   string `json:"vehicleYear,omitempty"`
	BusinessType  string `json:"businessType,omitempty"`
	EmployeeCount string `json:"employeeCount,omitempty"`
	AnnualRevenue string `json:"annualRevenue,omitempty"`

	CoverageAmount  string `json:"coverageAmount,omitempty"`
	Deductible      string `json:"deductible,omitempty"`
	StartDate       string `json:"startDate,omitempty"`
	AdditionalNotes string `json:"additionalNotes,omitempty"`

	Consent bool `json:"consent"`
}

// NewQuoteSubmission copies a validated draft into a submission. The honeypot
// is dropped; it never reaches storage.
func NewQuoteSubmission(id string, receivedAt time.Time, d QuoteDraft) *QuoteSubmission {
	return &QuoteSubmission{
		ID:              id,
		ReceivedAt:      receivedAt,
		InsuranceType:   d.InsuranceType,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		Phone:           d.Phone,
		Address:         d.Address,
		City:            d.City,
		State:           d.State,
		ZipCode:         d.ZipCode,
		PropertyType:    d.PropertyType,
		YearBuilt:       d.YearBuilt,
		VehicleMake:     d.VehicleMake,
		VehicleModel:    d.VehicleModel,
		VehicleYear:     d.VehicleYear,
		BusinessType:    d.BusinessType,
		EmployeeCount:   d.EmployeeCount,
		AnnualRevenue:   d.AnnualRevenue,
		CoverageAmount:  d.CoverageAmount,
		Deductible:      d.Deductible,
		StartDate:       d.StartDate,
		AdditionalNotes: d.AdditionalNotes,
		Consent:         bool(d.Consent),
	}
}

// FullName joins first and last name the way notifications print it.
func (q *QuoteSubmission) FullName() string {
	return strings.TrimSpace(q.FirstName + " " + q.LastName)
}

type QuoteRepositoryInterface interface {
	Create(ctx context.Context, q *QuoteSubmission) error
}
