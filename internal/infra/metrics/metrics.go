package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements the lifecycle counters and the HTTP latency histogram.
type Recorder struct {
	BookingTransitions *prometheus.CounterVec
	BookingsCreated    prometheus.Counter
	RefundTransitions  *prometheus.CounterVec
	OperationFailures  *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		BookingTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "booking",
				Name:      "status_transitions_total",
				Help:      "The total number of booking status transitions",
			},
			[]string{"from", "to"},
		),
		BookingsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "booking",
				Name:      "created_total",
				Help:      "The total number of bookings created at checkout",
			},
		),
		RefundTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "refund",
				Name:      "status_transitions_total",
				Help:      "The total number of refund request status transitions",
			},
			[]string{"to"},
		),
		OperationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "booking_core",
				Name:      "operation_failures_total",
				Help:      "The total number of failed commands by error kind",
			},
			[]string{"operation", "kind"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (r *Recorder) BookingTransition(from, to string) {
	r.BookingTransitions.WithLabelValues(from, to).Inc()
}

func (r *Recorder) BookingCreated() {
	r.BookingsCreated.Inc()
}

func (r *Recorder) RefundTransition(to string) {
	r.RefundTransitions.WithLabelValues(to).Inc()
}

func (r *Recorder) OperationFailed(operation, kind string) {
	r.OperationFailures.WithLabelValues(operation, kind).Inc()
}

// Middleware observes request latency per route template.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
