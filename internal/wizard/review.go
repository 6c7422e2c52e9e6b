package wizard

import (
	"strings"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

type ReviewLine struct {
	Label string
	Value string
}

// ReviewGroup is one block of the review step. Step is where Edit goes.
type ReviewGroup struct {
	Title string
	Step  int
	Lines []ReviewLine
}

// Review groups the draft for the last step. Details and coverage only show
// when something in them was filled in. Notes have no edit target.
func Review(d entity.QuoteDraft) []ReviewGroup {
	groups := []ReviewGroup{
		{
			Title: "Insurance Type",
			Step:  schema.StepProduct,
			Lines: []ReviewLine{{Value: productLabel(d.InsuranceType)}},
		},
		{
			Title: "Personal Information",
			Step:  schema.StepContact,
			Lines: []ReviewLine{
				{"Name", strings.TrimSpace(d.FirstName + " " + d.LastName)},
				{"Email", d.Email},
				{"Phone", d.Phone},
				{"Address", d.Address + ", " + d.City + ", " + d.State + " " + d.ZipCode},
			},
		},
	}

	var details []ReviewLine
	if d.VehicleMake != "" {
		details = append(details, ReviewLine{"Vehicle", strings.Join(nonEmpty(d.VehicleYear, d.VehicleMake, d.VehicleModel), " ")})
	}
	if d.PropertyType != "" {
		details = append(details,
			ReviewLine{"Property Type", d.PropertyType},
			ReviewLine{"Year Built", d.YearBuilt},
		)
	}
	if d.BusinessType != "" {
		details = append(details,
			ReviewLine{"Business Type", d.BusinessType},
			ReviewLine{"Employees", d.EmployeeCount},
			ReviewLine{"Revenue", d.AnnualRevenue},
		)
	}
	if len(details) > 0 {
		groups = append(groups, ReviewGroup{Title: "Additional Details", Step: schema.StepDetails, Lines: details})
	}

	var coverage []ReviewLine
	if d.CoverageAmount != "" {
		coverage = append(coverage, ReviewLine{"Coverage Amount", d.CoverageAmount})
	}
	if d.Deductible != "" {
		coverage = append(coverage, ReviewLine{"Deductible", "$" + d.Deductible})
	}
	if d.StartDate != "" {
		coverage = append(coverage, ReviewLine{"Start Date", d.StartDate})
	}
	if len(coverage) > 0 {
		groups = append(groups, ReviewGroup{Title: "Coverage Preferences", Step: schema.StepCoverage, Lines: coverage})
	}

	if d.AdditionalNotes != "" {
		groups = append(groups, ReviewGroup{Title: "Additional Notes", Lines: []ReviewLine{{Value: d.AdditionalNotes}}})
	}
	return groups
}

func productLabel(id string) string {
	if p, ok := entity.LookupProduct(id); ok {
		return p.Label
	}
	return id
}

func nonEmpty(ss ...string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
