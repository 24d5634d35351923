package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors holds all Prometheus collectors for the Driftboard backend.
var Collectors = struct {
	VotesTotal       *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}{}

// Init registers all Prometheus metrics. Call once at startup. pool may
// be nil when the server runs on the in-memory store.
func Init(pool *pgxpool.Pool) {
	Collectors.VotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "driftboard_votes_total",
			Help: "Total vote operations, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	Collectors.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "driftboard_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Collectors.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "driftboard_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Collectors.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driftboard_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Collectors.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "driftboard_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges read live stats from pgxpool.
	if pool != nil {
		Collectors.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "driftboard_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Collectors.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "driftboard_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Collectors.DBPoolActive)
		prometheus.MustRegister(Collectors.DBPoolIdle)
	}

	prometheus.MustRegister(
		Collectors.VotesTotal,
		Collectors.RequestDuration,
		Collectors.RequestsInFlight,
		Collectors.CacheHits,
		Collectors.CacheMisses,
	)
}

// IncVote bumps the vote outcome counter. Nil-safe so code paths under
// test run without Init.
func IncVote(op, outcome string) {
	if Collectors.VotesTotal != nil {
		Collectors.VotesTotal.WithLabelValues(op, outcome).Inc()
	}
}

// IncCacheHit bumps the cache hit counter. Nil-safe.
func IncCacheHit() {
	if Collectors.CacheHits != nil {
		Collectors.CacheHits.Inc()
	}
}

// IncCacheMiss bumps the cache miss counter. Nil-safe.
func IncCacheMiss() {
	if Collectors.CacheMisses != nil {
		Collectors.CacheMisses.Inc()
	}
}

// Middleware records request duration and in-flight count for Prometheus.
// Nil-safe like the counter helpers: without Init it passes through.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if Collectors.RequestDuration == nil {
			return c.Next()
		}
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Collectors.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Collectors.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Collectors.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if strings.HasPrefix(path, "/api/items/") {
		if strings.HasSuffix(path, "/hide") {
			return "/api/items/:itemId/hide"
		}
		return "/api/items/:itemId"
	}
	return path
}

// Handler serves the Prometheus /metrics endpoint via Fiber.
func Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}
