package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the metrics surface used by services and middleware. The
// Prometheus implementation and NoopMetrics both satisfy it.
type Recorder interface {
	// Authorization code flow
	RecordCodeIssued(success bool)
	RecordCodeExchange(result string)

	// Tokens
	RecordTokenIssued(grantType string, generationTime time.Duration)
	RecordTokenValidation(result string)
	RecordTokenRevoked()

	// Credential authentication
	RecordAuthAttempt(success bool, duration time.Duration)
	RecordLogout()

	// Gauges (updated by the periodic gauge job)
	SetActiveCodesCount(count int)
	SetActiveTokensCount(count int)
}

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	CodesIssuedTotal  *prometheus.CounterVec
	CodeExchangeTotal *prometheus.CounterVec

	TokensIssuedTotal       *prometheus.CounterVec
	TokenValidationTotal    *prometheus.CounterVec
	TokensRevokedTotal      prometheus.Counter
	TokenGenerationDuration prometheus.Histogram

	AuthAttemptsTotal *prometheus.CounterVec
	AuthLoginDuration prometheus.Histogram
	LogoutsTotal      prometheus.Counter

	CodesActive  prometheus.Gauge
	TokensActive prometheus.Gauge

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init returns the Prometheus-backed Recorder when enabled, NoopMetrics
// otherwise. Prometheus collectors are registered exactly once per process.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

func initMetrics() *Metrics {
	return &Metrics{
		CodesIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_authorization_codes_issued_total",
				Help: "Total number of authorization codes issued",
			},
			[]string{"result"},
		),
		CodeExchangeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_authorization_code_exchanges_total",
				Help: "Total number of authorization code exchange attempts",
			},
			[]string{"result"},
		),
		TokensIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_tokens_issued_total",
				Help: "Total number of access tokens issued",
			},
			[]string{"grant_type"},
		),
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_token_validations_total",
				Help: "Total number of bearer token validations",
			},
			[]string{"result"},
		),
		TokensRevokedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cas_tokens_revoked_total",
				Help: "Total number of tokens revoked",
			},
		),
		TokenGenerationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cas_token_generation_duration_seconds",
				Help:    "Time taken to generate and store a token",
				Buckets: prometheus.DefBuckets,
			},
		),
		AuthAttemptsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_auth_attempts_total",
				Help: "Total number of credential authentication attempts",
			},
			[]string{"result"},
		),
		AuthLoginDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cas_auth_login_duration_seconds",
				Help:    "Time taken to authenticate credentials",
				Buckets: prometheus.DefBuckets,
			},
		),
		LogoutsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cas_logouts_total",
				Help: "Total number of logouts",
			},
		),
		CodesActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cas_authorization_codes_active",
				Help: "Number of authorization codes currently stored",
			},
		),
		TokensActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cas_tokens_active",
				Help: "Number of access tokens currently stored",
			},
		),
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cas_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cas_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cas_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

const (
	resultSuccess = "success"
	resultError   = "error"
)

func boolResult(success bool) string {
	if success {
		return resultSuccess
	}
	return resultError
}

func (m *Metrics) RecordCodeIssued(success bool) {
	m.CodesIssuedTotal.WithLabelValues(boolResult(success)).Inc()
}

func (m *Metrics) RecordCodeExchange(result string) {
	m.CodeExchangeTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordTokenIssued(grantType string, generationTime time.Duration) {
	m.TokensIssuedTotal.WithLabelValues(grantType).Inc()
	m.TokenGenerationDuration.Observe(generationTime.Seconds())
}

func (m *Metrics) RecordTokenValidation(result string) {
	m.TokenValidationTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordTokenRevoked() {
	m.TokensRevokedTotal.Inc()
}

func (m *Metrics) RecordAuthAttempt(success bool, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(boolResult(success)).Inc()
	m.AuthLoginDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordLogout() {
	m.LogoutsTotal.Inc()
}

func (m *Metrics) SetActiveCodesCount(count int) {
	m.CodesActive.Set(float64(count))
}

func (m *Metrics) SetActiveTokensCount(count int) {
	m.TokensActive.Set(float64(count))
}
