package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	catalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashionhub_catalog_products",
			Help: "Number of products currently in the catalog.",
		},
	)
	catalogChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashionhub_catalog_changes_total",
			Help: "Applied catalog mutations by kind.",
		},
		[]string{"kind"},
	)
	cartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashionhub_cart_items",
			Help: "Total quantity of items in the cart.",
		},
	)
	cartValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashionhub_cart_value",
			Help: "Total price of the cart.",
		},
	)
	authSignedIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashionhub_auth_signed_in",
			Help: "1 while a user is signed in.",
		},
	)
	themeDark = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fashionhub_theme_dark",
			Help: "1 while the effective theme is dark.",
		},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware must wrap the ServeMux directly: the mux records the matched
// pattern on the request it is handed, which is used as the path label.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)
			path := routeLabel(r)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// routeLabel keeps label cardinality bounded by using the route pattern
// instead of the raw path.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}

	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}

	return r.Pattern
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}

// Observe subscribes the storefront gauges to the containers and seeds them
// with the current state. The returned func unsubscribes all of them.
func Observe(catalog *service.CatalogService, cart *service.CartService, auth *service.AuthService, theme *service.ThemeService) (stop func()) {

	recordCart(cart.Snapshot())
	recordAuth(auth.State())
	recordTheme(theme.State())

	unsubscribers := []func(){
		catalog.Subscribe(recordCatalog),
		cart.Subscribe(recordCart),
		auth.Subscribe(recordAuth),
		theme.Subscribe(recordTheme),
	}

	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func recordCatalog(s service.CatalogSnapshot) {
	catalogProducts.Set(float64(len(s.Products)))
	catalogChangesTotal.WithLabelValues(string(s.Kind)).Inc()
}

func recordCart(s models.CartSnapshot) {
	cartItems.Set(float64(s.TotalItems))
	cartValue.Set(s.TotalPrice)
}

func recordAuth(s models.AuthState) {
	authSignedIn.Set(boolToFloat(s.IsAuthenticated))
}

func recordTheme(s models.ThemeState) {
	themeDark.Set(boolToFloat(s.Effective == models.SchemeDark))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
