// Package schema holds the acceptance rules for quote and contact data. The
// same rule set runs in the wizard before a step advances and in the gateway
// before anything is stored, so the two cannot drift apart.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// go-playground/validator caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return sf.Name
		}
		return name
	})
	if err := v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("schema: register zipcode: %v", err))
	}
	return v
}

// FieldError is one offending field: the JSON path and a message a person can read.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists every failed field in declaration order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	return e.Message(field) != ""
}

// Message returns the first message for field, or "".
func (e Errors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// check runs the validator over s and converts failures into Errors. Each
// schema field carries its message in a msg tag.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("schema: %w", err)
	}
	t := reflect.Indirect(reflect.ValueOf(s)).Type()
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		msg := "Invalid value"
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if m := sf.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

// AsErrors unwraps field errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// QuoteSubmission is the gateway schema: every step in one record.
type QuoteSubmission struct {
	InsuranceType string `json:"insuranceType" validate:"min=1" msg:"Insurance type is required"`

	FirstName string `json:"firstName" validate:"min=2" msg:"First name must be at least 2 characters"`
	LastName  string `json:"lastName" validate:"min=2" msg:"Last name must be at least 2 characters"`
	Email     string `json:"email" validate:"email" msg:"Invalid email address"`
	Phone     string `json:"phone" validate:"min=10" msg:"Phone number must be at least 10 digits"`
	Address   string `json:"address" validate:"min=5" msg:"Address must be at least 5 characters"`
	City      string `json:"city" validate:"min=2" msg:"City must be at least 2 characters"`
	State     string `json:"state" validate:"min=2" msg:"State is required"`
	ZipCode   string `json:"zipCode" validate:"zipcode" msg:"Invalid ZIP code"`

	PropertyType  string `json:"propertyType"`
	YearBuilt     string `json:"yearBuilt"`
	VehicleMake   string `json:"vehicleMake"`
	VehicleModel  string `json:"vehicleModel"`
	VehicleYear   string `json:"vehicleYear"`
	BusinessType  string `json:"businessType"`
	EmployeeCount string `json:"employeeCount"`
	AnnualRevenue string `json:"annualRevenue"`

	CoverageAmount  string `json:"coverageAmount"`
	Deductible      string `json:"deductible"`
	StartDate       string `json:"startDate"`
	AdditionalNotes string `json:"additionalNotes"`

	Consent  bool   `json:"consent" validate:"eq=true" msg:"You must agree to the privacy policy and terms"`
	Honeypot string `json:"honeypot"`
}

func quoteSubmissionFrom(d entity.QuoteDraft) QuoteSubmission {
	return QuoteSubmission{
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
		Honeypot:        d.Honeypot,
	}
}

// ValidateQuote runs the full submission schema. The returned error is
// Errors when fields fail.
func ValidateQuote(d entity.QuoteDraft) error {
	return check(quoteSubmissionFrom(d))
}

// Contact is the contact page schema.
type Contact struct {
	Name    string `json:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	Email   string `json:"email" validate:"email" msg:"Invalid email address"`
	Phone   string `json:"phone" validate:"min=10" msg:"Phone number must be at least 10 digits"`
	Message string `json:"message" validate:"min=10" msg:"Message must be at least 10 characters"`
}

func ValidateContact(r entity.ContactRequest) error {
	return check(Contact{Name: r.Name, Email: r.Email, Phone: r.Phone, Message: r.Message})
}
