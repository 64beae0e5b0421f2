package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

type Handlers struct {
	Leads    *LeadHandler
	Deals    *DealHandler
	Products *ProductHandler
	Invoices *InvoiceHandler
	Reports  *ReportHandler
	Health   *HealthHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Limiter        *middleware.RateLimiter
	TrustProxy     bool
	Log            *logrus.Logger
}

func NewRouter(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Handler)
		}
		r.Route("/leads", h.Leads.Routes)
		r.Route("/deals", h.Deals.Routes)
		r.Route("/products", h.Products.Routes)
		r.Route("/invoices", h.Invoices.Routes)
		r.Post("/invoice-drafts/items", h.Invoices.RecalculateItem)
		r.Route("/reports", h.Reports.Routes)
	})
	return r
}
