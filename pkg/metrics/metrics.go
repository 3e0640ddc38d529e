package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bay_booking"

// Metrics набор Prometheus метрик сервиса.
// Все методы безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbConnections   *prometheus.GaugeVec

	reservationOps *prometheus.CounterVec

	syncTicks        *prometheus.CounterVec
	syncTickDuration *prometheus.HistogramVec
	syncItems        *prometheus.CounterVec
	syncLastTick     *prometheus.GaugeVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_query_errors_total",
			Help:        "Database query errors by operation.",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections",
			Help:        "Database connection pool state.",
			ConstLabels: labels,
		}, []string{"state"}),
		reservationOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reservation_operations_total",
			Help:        "Reservation lifecycle operations by result.",
			ConstLabels: labels,
		}, []string{"operation", "result"}),
		syncTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sync_ticks_total",
			Help:        "Reconciliation ticks by trigger and outcome.",
			ConstLabels: labels,
		}, []string{"trigger", "outcome"}),
		syncTickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "sync_tick_duration_seconds",
			Help:        "Reconciliation tick duration.",
			ConstLabels: labels,
			Buckets:     []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"outcome"}),
		syncItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "sync_items_total",
			Help:        "Reconciled reservations by resource, action and result.",
			ConstLabels: labels,
		}, []string{"resource", "action", "result"}),
		syncLastTick: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "sync_last_tick_timestamp_seconds",
			Help:        "Unix time of the last completed tick per resource.",
			ConstLabels: labels,
		}, []string{"resource"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.dbQueryDuration, m.dbQueryErrors, m.dbConnections,
		m.reservationOps,
		m.syncTicks, m.syncTickDuration, m.syncItems, m.syncLastTick,
	)

	return m
}

// Handler HTTP handler для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry реестр метрик (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет метрики пула соединений
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.dbConnections.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbConnections.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
}

func (m *Metrics) RecordReservationOp(operation, result string) {
	if m == nil {
		return
	}
	m.reservationOps.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) RecordTick(trigger, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.syncTicks.WithLabelValues(trigger, outcome).Inc()
	m.syncTickDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *Metrics) RecordSyncItem(resourceID, action, result string) {
	if m == nil {
		return
	}
	m.syncItems.WithLabelValues(resourceID, action, result).Inc()
}

func (m *Metrics) SetLastTick(resourceID string, at time.Time) {
	if m == nil {
		return
	}
	m.syncLastTick.WithLabelValues(resourceID).Set(float64(at.Unix()))
}
