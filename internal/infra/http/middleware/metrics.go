package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_leads_created_total",
			Help: "Total number of leads created",
		},
		[]string{"source"},
	)

	dealStageMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_deal_stage_moves_total",
			Help: "Total number of deal stage changes",
		},
		[]string{"from", "to"},
	)

	invoiceStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_invoice_status_changes_total",
			Help: "Total number of invoice status changes",
		},
		[]string{"from", "to"},
	)

	invoiceDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_invoice_deliveries_total",
			Help: "Total number of invoice delivery requests",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps ids out of the path label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// PrometheusRecorder feeds the CRM counters.
type PrometheusRecorder struct{}

func (PrometheusRecorder) LeadCreated(source entity.LeadSource) {
	leadsCreated.WithLabelValues(string(source)).Inc()
}

func (PrometheusRecorder) DealStageMoved(from, to entity.DealStage) {
	dealStageMoves.WithLabelValues(string(from), string(to)).Inc()
}

func (PrometheusRecorder) InvoiceStatusChanged(from, to entity.InvoiceStatus) {
	invoiceStatusChanges.WithLabelValues(string(from), string(to)).Inc()
}

func (PrometheusRecorder) InvoiceDelivery(result string) {
	invoiceDeliveries.WithLabelValues(result).Inc()
}
