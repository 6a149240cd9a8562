package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatlink_http_requests_total",
		Help: "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chatlink_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	messagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatlink_messages_sent_total",
		Help: "Messages accepted by the send endpoint.",
	})

	contactRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatlink_contact_transitions_total",
		Help: "Contact state transitions, by outcome.",
	}, []string{"outcome"})
)

// ObserveRequest records one HTTP request.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// MessageSent counts a successfully persisted message.
func MessageSent() {
	messagesSent.Inc()
}

// ContactTransition counts a contact state machine outcome
// (requested, accepted, rejected, removed).
func ContactTransition(outcome string) {
	contactRequests.WithLabelValues(outcome).Inc()
}

// Handler exposes the Prometheus scrape endpoint as a Gin handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
