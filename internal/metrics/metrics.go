package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for auth operations.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthOperations counts login, resolve and logout attempts by outcome and
// error code. Code is empty on success.
var AuthOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "food_auth_operations_total",
		Help: "Total number of authentication operations",
	},
	[]string{"operation", "outcome", "code"},
)

var CustomerSignups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "food_customer_signups_total",
		Help: "Total number of signup attempts",
	},
	[]string{"outcome", "code"},
)

var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "food_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// RegisterMetrics registers the application collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AuthOperations)
	reg.MustRegister(CustomerSignups)
	reg.MustRegister(HTTPRequestDuration)
}

// NewRegistry returns a registry with the runtime collectors and the
// application metrics registered.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	RegisterMetrics(registry)
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Registry: registry,
	})
}

func RecordAuth(operation, outcome, code string) {
	AuthOperations.WithLabelValues(operation, outcome, code).Inc()
}

func RecordSignup(outcome, code string) {
	CustomerSignups.WithLabelValues(outcome, code).Inc()
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
