package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
	"github.com/tgiagency/quote-funnel/internal/usecase"
)

type QuoteSubmitter interface {
	Execute(ctx context.Context, draft entity.QuoteDraft) (*usecase.SubmitOutput, error)
}

var quoteMessages = formMessages{
	RateLimited:   "Too many quote requests. Please try again later.",
	Invalid:       "Invalid request data",
	PersistFailed: "Failed to save quote request. Please try again.",
	Unexpected:    "An unexpected error occurred. Please try again.",
	Success:       "Quote request submitted successfully",
}

type QuoteHandler struct {
	submitter QuoteSubmitter
	submission
}

func NewQuoteHandler(submitter QuoteSubmitter, limiter *ratelimit.Limiter, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{
		submitter: submitter,
		submission: submission{
			form:    "quote",
			limiter: limiter,
			msgs:    quoteMessages,
			logger:  logger,
		},
	}
}

// Submit handles POST /api/quotes. The rate limit runs before the body is
// read.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !h.admit(w, r) {
		return
	}

	var draft entity.QuoteDraft
	if err := h.decode(w, r, &draft); err != nil {
		h.respond(w, nil, err)
		return
	}

	out, err := h.submitter.Execute(r.Context(), draft)
	h.respond(w, out, err)
}
