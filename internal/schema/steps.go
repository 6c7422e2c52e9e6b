package schema

import (
	"fmt"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// Wizard steps, 1-based to match what people see on screen.
const (
	StepProduct = iota + 1
	StepContact
	StepDetails
	StepCoverage
	StepReview
)

const StepCount = StepReview

type StepOne struct {
	InsuranceType string `json:"insuranceType" validate:"min=1" msg:"Please select an insurance type"`
}

type StepTwo struct {
	FirstName string `json:"firstName" validate:"min=2" msg:"First name must be at least 2 characters"`
	LastName  string `json:"lastName" validate:"min=2" msg:"Last name must be at least 2 characters"`
	Email     string `json:"email" validate:"email" msg:"Invalid email address"`
	Phone     string `json:"phone" validate:"min=10" msg:"Phone number must be at least 10 digits"`
	Address   string `json:"address" validate:"min=5" msg:"Address must be at least 5 characters"`
	City      string `json:"city" validate:"min=2" msg:"City must be at least 2 characters"`
	State     string `json:"state" validate:"min=2" msg:"State is required"`
	ZipCode   string `json:"zipCode" validate:"zipcode" msg:"Invalid ZIP code"`
}

// StepThree fields are all optional whatever the product; the wizard only
// shows the group that applies.
type StepThree struct {
	PropertyType  string `json:"propertyType"`
	YearBuilt     string `json:"yearBuilt"`
	VehicleMake   string `json:"vehicleMake"`
	VehicleModel  string `json:"vehicleModel"`
	VehicleYear   string `json:"vehicleYear"`
	BusinessType  string `json:"businessType"`
	EmployeeCount string `json:"employeeCount"`
	AnnualRevenue string `json:"annualRevenue"`
}

type StepFour struct {
	CoverageAmount  string `json:"coverageAmount"`
	Deductible      string `json:"deductible"`
	StartDate       string `json:"startDate"`
	AdditionalNotes string `json:"additionalNotes"`
}

// ValidateStep checks the fields owned by one step. The review step is
// checked with the full submission schema.
func ValidateStep(step int, d entity.QuoteDraft) error {
	switch step {
	case StepProduct:
		return check(StepOne{InsuranceType: d.InsuranceType})
	case StepContact:
		return check(StepTwo{
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Email:     d.Email,
			Phone:     d.Phone,
			Address:   d.Address,
			City:      d.City,
			State:     d.State,
			ZipCode:   d.ZipCode,
		})
	case StepDetails:
		return check(StepThree{
			PropertyType:  d.PropertyType,
			YearBuilt:     d.YearBuilt,
			VehicleMake:   d.VehicleMake,
			VehicleModel:  d.VehicleModel,
			VehicleYear:   d.VehicleYear,
			BusinessType:  d.BusinessType,
			EmployeeCount: d.EmployeeCount,
			AnnualRevenue: d.AnnualRevenue,
		})
	case StepCoverage:
		return check(StepFour{
			CoverageAmount:  d.CoverageAmount,
			Deductible:      d.Deductible,
			StartDate:       d.StartDate,
			AdditionalNotes: d.AdditionalNotes,
		})
	case StepReview:
		return ValidateQuote(d)
	}
	return fmt.Errorf("schema: unknown step %d", step)
}
