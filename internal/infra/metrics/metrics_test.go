//go:build unit

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.BookingTransition("confirmed", "cancelled")
	r.BookingTransition("confirmed", "cancelled")
	r.BookingCreated()
	r.RefundTransition("approved")
	r.OperationFailed("refund.process", "invalid_state_transition")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.BookingTransitions.WithLabelValues("confirmed", "cancelled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.BookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.RefundTransitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.OperationFailures.WithLabelValues("refund.process", "invalid_state_transition")))
}

func TestRecorder_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	router := gin.New()
	router.Use(r.Middleware())
	router.GET("/bookings/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
