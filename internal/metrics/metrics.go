package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybook_bookings_created_total",
		Help: "Number of bookings created",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybook_bookings_cancelled_total",
		Help: "Number of bookings cancelled",
	})

	SeatConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skybook_seat_conflicts_total",
		Help: "Number of reservation attempts rejected because the seat was taken",
	})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skybook_payments_recorded_total",
		Help: "Number of payments recorded, by status",
	}, []string{"status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skybook_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// HTTPMiddleware records per-request latency labeled by route template.
func HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus registry for the /metrics endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
