package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exposes metrics on its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	logins         *prometheus.CounterVec
	authRejected   *prometheus.CounterVec
	rateLimited    *prometheus.CounterVec
	contentChanges *prometheus.CounterVec
	inquiries      prometheus.Counter
	notifications  *prometheus.CounterVec
}

// NewPrometheus creates and registers the site metrics plus Go runtime collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "full9_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_admin_logins_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
		authRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_auth_rejected_total",
			Help: "Bearer tokens rejected by reason.",
		}, []string{"reason"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_rate_limited_total",
			Help: "Requests rejected by rate limiting.",
		}, []string{"scope"}),
		contentChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_content_changes_total",
			Help: "Admin edits by resource and operation.",
		}, []string{"resource", "op"}),
		inquiries: factory.NewCounter(prometheus.CounterOpts{
			Name: "full9_inquiries_submitted_total",
			Help: "Public inquiries accepted.",
		}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "full9_inquiry_notifications_total",
			Help: "Inquiry webhook notifications by outcome.",
		}, []string{"status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) IncLogin(result string) { p.logins.WithLabelValues(result).Inc() }

func (p *PrometheusRecorder) IncAuthRejected(reason string) {
	p.authRejected.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncRateLimited(scope string) { p.rateLimited.WithLabelValues(scope).Inc() }

func (p *PrometheusRecorder) IncContentChange(resource, op string) {
	p.contentChanges.WithLabelValues(resource, op).Inc()
}

func (p *PrometheusRecorder) IncInquirySubmitted() { p.inquiries.Inc() }

func (p *PrometheusRecorder) IncNotification(status string) {
	p.notifications.WithLabelValues(status).Inc()
}
