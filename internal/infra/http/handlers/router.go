package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/infra/http/middleware"
)

// preflightMaxAge is how long browsers may cache a form preflight, in seconds.
const preflightMaxAge = 86400

// RouterDeps is everything the HTTP surface needs. Nil handlers leave their
// routes unmounted.
type RouterDeps struct {
	Quote         *QuoteHandler
	Contact       *ContactHandler
	Content       *ContentHandler
	Health        *HealthHandler
	AllowedOrigin string
	Logger        *zap.Logger
}

func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)

	if d.Health != nil {
		r.Get("/healthz", d.Health.Handle)
	}
	r.Handle("/metrics", middleware.MetricsHandler())

	r.Route("/api", func(r chi.Router) {
		if d.Quote != nil {
			r.Post("/quotes", d.Quote.Submit)
			r.Options("/quotes", Preflight(d.AllowedOrigin, http.StatusNoContent, preflightMaxAge))
		}
		if d.Contact != nil {
			r.Post("/contact", d.Contact.Submit)
			r.Options("/contact", Preflight(d.AllowedOrigin, http.StatusOK, preflightMaxAge))
		}

		r.Group(func(r chi.Router) {
			origins := []string{"*"}
			if d.AllowedOrigin != "" {
				origins = []string{d.AllowedOrigin}
			}
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				MaxAge:         300,
			}))

			r.Get("/insurance-types", InsuranceTypes)
			if d.Content != nil {
				r.Get("/posts", d.Content.List)
				r.Get("/posts/{slug}", d.Content.Get)
				r.Get("/posts/{slug}/related", d.Content.Related)
			}
		})
	})
	return r
}
