package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/graphybook/studio/internal/demo"
)

// Metrics counts studio activity. It implements demo.Observer.
type Metrics struct {
	registry         *prometheus.Registry
	autoplaySteps    prometheus.Counter
	actions          *prometheus.CounterVec
	wsClients        prometheus.Gauge
	playbackFailures prometheus.Counter
}

// NewMetrics registers the studio collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		autoplaySteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphybook_autoplay_steps_total",
			Help: "Autoplay steps started.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphybook_actions_total",
			Help: "Manual generate and execute actions started.",
		}, []string{"action"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphybook_ws_clients",
			Help: "Connected WebSocket clients.",
		}),
		playbackFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphybook_playback_failures_total",
			Help: "Clip playbacks refused by a player.",
		}),
	}
	m.registry.MustRegister(
		m.autoplaySteps,
		m.actions,
		m.wsClients,
		m.playbackFailures,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) StepStarted(int, demo.Step) { m.autoplaySteps.Inc() }

func (m *Metrics) ActionStarted(action string) { m.actions.WithLabelValues(action).Inc() }

func (m *Metrics) PlaybackFailed(string, error) { m.playbackFailures.Inc() }

// SetClients records the WebSocket client count.
func (m *Metrics) SetClients(n int) { m.wsClients.Set(float64(n)) }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
