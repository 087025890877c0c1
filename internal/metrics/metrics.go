// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/pemf-controller/internal/protocol"
	"github.com/tamzrod/pemf-controller/internal/session"
)

const namespace = "pemf"

// Metrics owns a private registry so several controllers (or tests)
// never collide on the default one.
// It implements session.Observer.
type Metrics struct {
	reg *prometheus.Registry

	applies  prometheus.Counter
	freq     prometheus.Gauge
	duty     prometheus.Gauge
	duration prometheus.Gauge

	reads    prometheus.Counter
	readFreq prometheus.Gauge
	readDuty prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		applies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "applies_total",
			Help:      "Parameter sets transmitted to the modules.",
		}),
		freq: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "frequency_hz",
			Help:      "Frequency currently in effect.",
		}),
		duty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "duty_percent",
			Help:      "Duty cycle currently in effect.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "duration_minutes",
			Help:      "Session length currently in effect.",
		}),

		reads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signal",
			Name:      "reads_total",
			Help:      "Status queries sent to the signal generator.",
		}),
		readFreq: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "signal",
			Name:      "read_frequency_hz",
			Help:      "Frequency last reported by the signal generator.",
		}),
		readDuty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "signal",
			Name:      "read_duty_percent",
			Help:      "Duty cycle last reported by the signal generator.",
		}),

		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}

	m.reg.MustRegister(
		m.applies, m.freq, m.duty, m.duration,
		m.reads, m.readFreq, m.readDuty,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// ParametersApplied implements session.Observer.
func (m *Metrics) ParametersApplied(p session.Parameters) {
	m.applies.Inc()
	m.freq.Set(p.FrequencyHz)
	m.duty.Set(float64(p.DutyPercent))
	m.duration.Set(float64(p.DurationMinutes))
}

// SignalRead implements session.Observer.
func (m *Metrics) SignalRead(r protocol.SignalReading) {
	m.reads.Inc()
	m.readFreq.Set(r.FrequencyHz)
	m.readDuty.Set(r.DutyPercent)
}

// RecordHTTPRequest is called by the web middleware once per request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	statusLabel := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	m.httpDuration.WithLabelValues(method, path, statusLabel).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
