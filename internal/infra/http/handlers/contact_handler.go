package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
	"github.com/tgiagency/quote-funnel/internal/usecase"
)

type ContactSubmitter interface {
	Execute(ctx context.Context, req entity.ContactRequest) (*usecase.SubmitOutput, error)
}

var contactMessages = formMessages{
	RateLimited:   "Too many contact requests. Please try again later.",
	Invalid:       "Validation failed",
	PersistFailed: "Failed to save contact message. Please try again.",
	Unexpected:    "An unexpected error occurred",
	Success:       "Contact message sent successfully",
}

type ContactHandler struct {
	submitter ContactSubmitter
	submission
}

func NewContactHandler(submitter ContactSubmitter, limiter *ratelimit.Limiter, logger *zap.Logger) *ContactHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactHandler{
		submitter: submitter,
		submission: submission{
			form:    "contact",
			limiter: limiter,
			msgs:    contactMessages,
			logger:  logger,
		},
	}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.admit(w, r) {
		return
	}

	var req entity.ContactRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respond(w, nil, err)
		return
	}

	out, err := h.submitter.Execute(r.Context(), req)
	h.respond(w, out, err)
}
