package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "gamehost"

//nolint:gochecknoglobals // Collectors are registered once per process
var (
	metricsOnce sync.Once

	checkoutTotal *prometheus.CounterVec
	quoteTotal    *prometheus.CounterVec
)

// RegisterMetrics registers the checkout collectors with reg (default registerer when nil).
func RegisterMetrics(reg prometheus.Registerer) {
	metricsOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}

		checkoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "checkout_sessions_total",
			Help:      "Count of checkout session creation outcomes.",
		}, []string{"gateway", "result"})
		quoteTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "quotes_total",
			Help:      "Count of price quotes by outcome.",
		}, []string{"result"})

		reg.MustRegister(checkoutTotal, quoteTotal)
	})
}

// RecordCheckout counts one session creation outcome. No-op before RegisterMetrics.
func RecordCheckout(gateway, result string) {
	if checkoutTotal == nil {
		return
	}
	checkoutTotal.WithLabelValues(gateway, result).Inc()
}

// RecordQuote counts one quote outcome. No-op before RegisterMetrics.
func RecordQuote(result string) {
	if quoteTotal == nil {
		return
	}
	quoteTotal.WithLabelValues(result).Inc()
}

// MetricsHandler exposes the default Prometheus gatherer.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
