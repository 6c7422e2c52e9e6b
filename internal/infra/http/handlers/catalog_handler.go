package handlers

import (
	"net/http"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// InsuranceTypes handles GET /api/insurance-types.
func InsuranceTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: entity.Catalog()})
}
