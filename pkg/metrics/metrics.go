package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	DBPoolOpenConns  *prometheus.GaugeVec
	DBPoolIdleConns  *prometheus.GaugeVec
	DBPoolInUseConns *prometheus.GaugeVec

	BookingsAdmittedTotal  *prometheus.CounterVec
	BookingsRejectedTotal  *prometheus.CounterVec
	BookingsCancelledTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBPoolInUseConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsAdmittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_admitted_total",
			Help:        "Total number of admitted bookings",
			ConstLabels: constLabels,
		}, []string{"studio"}),

		BookingsRejectedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Total number of rejected booking attempts",
			ConstLabels: constLabels,
		}, []string{"studio", "reason"}),

		BookingsCancelledTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_cancelled_total",
			Help:        "Total number of cancelled bookings",
			ConstLabels: constLabels,
		}, []string{"studio"}),
	}
}

// BookingAdmitted инкрементирует счётчик принятых бронирований
// Безопасен при выключенных метриках (nil receiver)
func (m *Metrics) BookingAdmitted(studio string) {
	if m == nil {
		return
	}
	m.BookingsAdmittedTotal.WithLabelValues(studio).Inc()
}

// BookingRejected инкрементирует счётчик отклонённых попыток бронирования
func (m *Metrics) BookingRejected(studio, reason string) {
	if m == nil {
		return
	}
	m.BookingsRejectedTotal.WithLabelValues(studio, reason).Inc()
}

// BookingCancelled инкрементирует счётчик отменённых бронирований
func (m *Metrics) BookingCancelled(studio string) {
	if m == nil {
		return
	}
	m.BookingsCancelledTotal.WithLabelValues(studio).Inc()
}
