package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/infra/http/middleware"
	"github.com/tgiagency/quote-funnel/internal/infra/ratelimit"
	"github.com/tgiagency/quote-funnel/internal/schema"
	"github.com/tgiagency/quote-funnel/internal/usecase"
)

const maxBodyBytes = 64 << 10

// formMessages are the visitor facing strings of one form.
type formMessages struct {
	RateLimited   string
	Invalid       string
	PersistFailed string
	Unexpected    string
	Success       string
}

// submission is the part of the pipeline shared by the quote and contact
// endpoints: throttling, decoding and mapping outcomes to responses.
type submission struct {
	form    string
	limiter *ratelimit.Limiter
	msgs    formMessages
	logger  *zap.Logger
}

// admit applies the rate limit. It writes the 429 itself and reports false
// when the request must stop.
func (s *submission) admit(w http.ResponseWriter, r *http.Request) bool {
	d := s.limiter.Allow(r.Context(), ratelimit.ClientKey(r))
	if d.Allowed {
		return true
	}
	middleware.RecordRateLimited(s.form)
	w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfterSeconds()))
	writeError(w, http.StatusTooManyRequests, s.msgs.RateLimited)
	return false
}

// decode reads the JSON body into dst. A body that is not JSON is a
// DomainError carrying the form's invalid message.
func (s *submission) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.logger.Info("undecodable submission body", zap.String("form", s.form), zap.Error(err))
		return &usecase.DomainError{Code: usecase.CodeInvalidBody, Message: s.msgs.Invalid}
	}
	return nil
}

func (s *submission) respond(w http.ResponseWriter, out *usecase.SubmitOutput, err error) {
	if err == nil {
		if out.Discarded {
			middleware.RecordSubmission(s.form, middleware.OutcomeDiscarded)
			writeJSON(w, http.StatusOK, Response{Success: true, Message: s.msgs.Success})
			return
		}
		middleware.RecordSubmission(s.form, middleware.OutcomeAccepted)
		writeJSON(w, http.StatusCreated, Response{
			Success: true,
			Message: s.msgs.Success,
			Data:    IDData{ID: out.ID},
		})
		return
	}

	if details, ok := schema.AsErrors(err); ok {
		middleware.RecordSubmission(s.form, middleware.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: s.msgs.Invalid, Details: details})
		return
	}

	var de *usecase.DomainError
	if errors.As(err, &de) {
		middleware.RecordSubmission(s.form, middleware.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, de.Message)
		return
	}

	middleware.RecordSubmission(s.form, middleware.OutcomeFailed)
	var te *usecase.TechnicalError
	if errors.As(err, &te) && te.Code == usecase.CodePersistFailed {
		s.logger.Error("submission not stored", zap.String("form", s.form), zap.Error(err))
		writeError(w, http.StatusInternalServerError, s.msgs.PersistFailed)
		return
	}
	s.logger.Error("submission failed", zap.String("form", s.form), zap.Error(err))
	writeError(w, http.StatusInternalServerError, s.msgs.Unexpected)
}
