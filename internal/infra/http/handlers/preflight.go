package handlers

import (
	"net/http"
	"strconv"
)

// Preflight answers CORS OPTIONS requests for a form endpoint. The origin is
// allowedOrigin when set, else the request's Origin, else "*". A zero maxAge
// leaves out Access-Control-Max-Age.
func Preflight(allowedOrigin string, status int, maxAge int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := allowedOrigin
		if origin == "" {
			origin = r.Header.Get("Origin")
		}
		if origin == "" {
			origin = "*"
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if maxAge > 0 {
			h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
		}
		if origin != "*" {
			h.Add("Vary", "Origin")
		}
		w.WriteHeader(status)
	}
}
