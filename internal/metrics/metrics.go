package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSent          = "sent"
	OutcomeInvalidInput  = "invalid_input"
	OutcomeConfigMissing = "config_missing"
	OutcomeDeliveryError = "delivery_error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reset_pin_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "status"},
	)

	resetPINOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reset_pin_requests_total",
			Help: "Total number of reset PIN requests by outcome",
		},
		[]string{"outcome"},
	)

	emailSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reset_pin_email_send_duration_seconds",
			Help:    "Email sending duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

func RecordHTTPRequest(method string, status int) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func RecordOutcome(outcome string) {
	resetPINOutcomesTotal.WithLabelValues(outcome).Inc()
}

func RecordSendDuration(d time.Duration) {
	emailSendDuration.Observe(d.Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
