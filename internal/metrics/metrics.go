package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	UsersRegistered  prometheus.Counter
	DepositsTotal    *prometheus.CounterVec
	RedemptionsTotal *prometheus.CounterVec
	OTPTotal         *prometheus.CounterVec

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBConnectionErrors prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygreen_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polygreen_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "polygreen_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		UsersRegistered: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "polygreen_users_registered_total",
				Help: "Total number of registered users",
			},
		),
		DepositsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygreen_deposits_total",
				Help: "Total number of bottle deposits",
			},
			[]string{"status"},
		),
		RedemptionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygreen_redemptions_total",
				Help: "Total number of point redemptions",
			},
			[]string{"status"},
		),
		OTPTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygreen_otp_total",
				Help: "Total number of OTP operations",
			},
			[]string{"operation", "status"},
		),
		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "polygreen_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "polygreen_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBConnectionErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "polygreen_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordUserRegistered() {
	m.UsersRegistered.Inc()
}

func (m *Metrics) RecordDeposit(status string) {
	m.DepositsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordRedemption(status string) {
	m.RedemptionsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordOTP(operation, status string) {
	m.OTPTotal.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}
