// Package metrics собирает Prometheus метрики сервиса: HTTP запросы,
// запросы к БД и состояние connection pool.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics контейнер всех коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConns  *prometheus.GaugeVec
	dbPoolInUseConns *prometheus.GaugeVec
	dbPoolIdleConns  *prometheus.GaugeVec
	dbPoolWaitCount  *prometheus.CounterVec

	lastWaitCount int64
}

// New создает и регистрирует коллекторы в default registry.
// serviceName попадает в лейбл service каждой метрики.
func New(serviceName string) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		httpRequestsInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
			[]string{"service"},
		),
		dbQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"service", "operation", "status"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"service", "operation"},
		),
		dbPoolOpenConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_open_connections",
				Help: "Number of established connections in the pool",
			},
			[]string{"service"},
		),
		dbPoolInUseConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_in_use_connections",
				Help: "Number of connections currently in use",
			},
			[]string{"service"},
		),
		dbPoolIdleConns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_pool_idle_connections",
				Help: "Number of idle connections in the pool",
			},
			[]string{"service"},
		),
		dbPoolWaitCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_pool_wait_count_total",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbPoolOpenConns,
		m.dbPoolInUseConns,
		m.dbPoolIdleConns,
		m.dbPoolWaitCount,
	)

	// Инициализируем in-flight gauge, чтобы метрика была видна сразу
	m.httpRequestsInFlight.WithLabelValues(serviceName).Set(0)

	return m
}

// IncHTTPRequest инкрементирует счетчик HTTP запросов
func (m *Metrics) IncHTTPRequest(service, method, path, status string) {
	m.httpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
}

// ObserveHTTPRequestDuration записывает длительность HTTP запроса
func (m *Metrics) ObserveHTTPRequestDuration(service, method, path string, seconds float64) {
	m.httpRequestDuration.WithLabelValues(service, method, path).Observe(seconds)
}

// IncHTTPInFlight инкрементирует gauge выполняющихся запросов
func (m *Metrics) IncHTTPInFlight(service string) {
	m.httpRequestsInFlight.WithLabelValues(service).Inc()
}

// DecHTTPInFlight декрементирует gauge выполняющихся запросов
func (m *Metrics) DecHTTPInFlight(service string) {
	m.httpRequestsInFlight.WithLabelValues(service).Dec()
}

// ObserveDBQuery записывает выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation, status string, seconds float64) {
	m.dbQueriesTotal.WithLabelValues(service, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(service, operation).Observe(seconds)
}

// SetDBPoolStats публикует текущее состояние connection pool
func (m *Metrics) SetDBPoolStats(service string, stats sql.DBStats) {
	m.dbPoolOpenConns.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.dbPoolInUseConns.WithLabelValues(service).Set(float64(stats.InUse))
	m.dbPoolIdleConns.WithLabelValues(service).Set(float64(stats.Idle))

	// WaitCount в sql.DBStats монотонный, counter двигаем на дельту
	if delta := stats.WaitCount - m.lastWaitCount; delta > 0 {
		m.dbPoolWaitCount.WithLabelValues(service).Add(float64(delta))
		m.lastWaitCount = stats.WaitCount
	}
}
