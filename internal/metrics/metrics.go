// Package metrics exposes Prometheus collectors for the API.
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
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "salon_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	AppointmentsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_booked_total",
		Help: "Appointments created.",
	})

	BreakConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_break_conflicts_total",
		Help: "Bookings or moves rejected because they overlap a stylist break.",
	})

	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_orders_placed_total",
		Help: "Orders placed by initial status.",
	}, []string{"status"})

	PaymentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_payments_recorded_total",
		Help: "Payment details recorded by method.",
	}, []string{"method"})

	StockRowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_stock_rows_parsed_total",
		Help: "Spreadsheet rows parsed by section.",
	}, []string{"section"})
)

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
