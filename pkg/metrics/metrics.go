package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBPoolOpen      prometheus.Gauge
	DBPoolInUse     prometheus.Gauge
	DBPoolIdle      prometheus.Gauge

	// Business
	appointmentsCreated   prometheus.Counter
	appointmentsCancelled prometheus.Counter
	reservations          *prometheus.CounterVec
	conflictsDetected     *prometheus.CounterVec
	slotsGenerated        *prometheus.CounterVec
}

// New создает и регистрирует коллекторы в default registry
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
		}, []string{"operation"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),

		DBPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		DBPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),

		appointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of appointments created",
			ConstLabels: constLabels,
		}),

		appointmentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Total number of appointments cancelled",
			ConstLabels: constLabels,
		}),

		reservations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Total number of slot reservation attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),

		conflictsDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_conflicts_detected_total",
			Help:        "Total number of scheduling conflicts detected by type",
			ConstLabels: constLabels,
		}, []string{"type"}),

		slotsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Total number of slots generated by mode",
			ConstLabels: constLabels,
		}, []string{"mode"}),
	}
}

// IncAppointmentCreated увеличивает счётчик созданных приёмов
func (m *Metrics) IncAppointmentCreated() {
	m.appointmentsCreated.Inc()
}

// IncAppointmentCancelled увеличивает счётчик отменённых приёмов
func (m *Metrics) IncAppointmentCancelled() {
	m.appointmentsCancelled.Inc()
}

// IncReservation фиксирует результат попытки резервирования ("success", "full", "unavailable", "not_found", "error")
func (m *Metrics) IncReservation(result string) {
	m.reservations.WithLabelValues(result).Inc()
}

// IncConflictsDetected фиксирует обнаруженные конфликты по типу
func (m *Metrics) IncConflictsDetected(conflictType string, count int) {
	m.conflictsDetected.WithLabelValues(conflictType).Add(float64(count))
}

// AddSlotsGenerated фиксирует количество сгенерированных слотов ("recurring" | "bulk")
func (m *Metrics) AddSlotsGenerated(mode string, count int) {
	m.slotsGenerated.WithLabelValues(mode).Add(float64(count))
}

// Noop заглушка бизнес-метрик для случая, когда метрики выключены
type Noop struct{}

func (Noop) IncAppointmentCreated()           {}
func (Noop) IncAppointmentCancelled()         {}
func (Noop) IncReservation(string)            {}
func (Noop) IncConflictsDetected(string, int) {}
func (Noop) AddSlotsGenerated(string, int)    {}
