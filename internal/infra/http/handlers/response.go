package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tgiagency/quote-funnel/internal/schema"
)

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Details schema.Errors `json:"details,omitempty"`
	Data    any           `json:"data,omitempty"`
}

type IDData struct {
	ID string `json:"id"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}
