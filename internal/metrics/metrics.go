package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eudr"

// Metrics - метрики Prometheus конвейера загрузки.
// Все методы допускают nil-получатель, чтобы компоненты работали без метрик (в тестах).
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	AnalysisChunks     *prometheus.CounterVec
	AnalysisDuration   prometheus.Histogram
	Batches            *prometheus.CounterVec
	FarmsUpserted      *prometheus.CounterVec
	GeoidRegistrations *prometheus.CounterVec
}

// New регистрирует метрики в переданном реестре
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AnalysisChunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "chunks_total",
				Help:      "Chunks sent to the analysis provider",
			},
			[]string{"status"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analysis",
				Name:      "chunk_duration_seconds",
				Help:      "Analysis provider latency per chunk",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		Batches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingestion",
				Name:      "batches_total",
				Help:      "Ingestion batches by source and final state",
			},
			[]string{"source", "state"},
		),
		FarmsUpserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingestion",
				Name:      "farms_upserted_total",
				Help:      "Farm records written by the store",
			},
			[]string{"result"},
		),
		GeoidRegistrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "geoid",
				Name:      "registrations_total",
				Help:      "Geo-ID registry calls",
			},
			[]string{"status"},
		),
	}
}

// ObserveChunk учитывает один запрос к провайдеру анализа
func (m *Metrics) ObserveChunk(ok bool, d time.Duration) {
	if m == nil {
		return
	}
	m.AnalysisChunks.WithLabelValues(statusLabel(ok)).Inc()
	m.AnalysisDuration.Observe(d.Seconds())
}

// BatchFinished учитывает итог пакета загрузки
func (m *Metrics) BatchFinished(source, state string) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(source, state).Inc()
}

// Upserted учитывает созданные и обновленные записи
func (m *Metrics) Upserted(created, updated int) {
	if m == nil {
		return
	}
	m.FarmsUpserted.WithLabelValues("created").Add(float64(created))
	m.FarmsUpserted.WithLabelValues("updated").Add(float64(updated))
}

// GeoidRegistered учитывает обращение к реестру geo-ID
func (m *Metrics) GeoidRegistered(ok bool) {
	if m == nil {
		return
	}
	m.GeoidRegistrations.WithLabelValues(statusLabel(ok)).Inc()
}

// GinMiddleware собирает метрики HTTP-запросов
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func statusLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
