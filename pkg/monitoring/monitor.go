package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_completions_total",
			Help: "Completed quiz playthroughs by outcome",
		},
		[]string{"result"},
	)

	CompletionWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollment_completion_writes_total",
			Help: "Enrollment completion writes issued after a passed quiz",
		},
		[]string{"status"},
	)

	ActiveQuizSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiz_sessions_active",
			Help: "Quiz sessions currently held in memory",
		},
	)

	LessonCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lesson_cache_lookups_total",
			Help: "Course lesson list cache lookups",
		},
		[]string{"result"},
	)

	HubConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "message_hub_connections",
			Help: "Websocket clients connected to the message hub",
		},
	)

	HubEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_hub_events_total",
			Help: "Message hub events by type and direction",
		},
		[]string{"type", "direction"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuizCompletions,
			CompletionWrites,
			ActiveQuizSessions,
			LessonCacheLookups,
			HubConnections,
			HubEvents,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
