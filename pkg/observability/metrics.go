package observability

import (
	"sync"
	"time"

	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// Subscriber is anything events can be subscribed on, such as a Drake.
type Subscriber interface {
	On(t domain.EventType, fn domain.Listener) registry.Subscription
}

// Metrics holds the Prometheus collectors for drag sessions.
type Metrics struct {
	Sessions *prometheus.CounterVec
	Shadows  prometheus.Counter
	Clones   *prometheus.CounterVec
	Duration prometheus.Histogram

	mu      sync.Mutex
	started map[string]time.Time
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drake_sessions_total",
				Help: "Drag sessions by final outcome",
			},
			[]string{"outcome"},
		),
		Shadows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "drake_shadows_total",
			Help: "Preview relocations",
		}),
		Clones: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drake_clones_total",
				Help: "Items cloned, by kind (copy or mirror)",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "drake_session_duration_seconds",
			Help:    "Time from drag to dragend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		started: make(map[string]time.Time),
	}
	if reg != nil {
		reg.MustRegister(m.Sessions, m.Shadows, m.Clones, m.Duration)
	}
	return m
}

// Attach subscribes the metrics to every event they count.
func (m *Metrics) Attach(s Subscriber) {
	s.On(domain.EventDrag, m.observe)
	s.On(domain.EventDragEnd, m.observe)
	s.On(domain.EventShadow, m.observe)
	s.On(domain.EventCloned, m.observe)
}

func (m *Metrics) observe(e domain.Event) error {
	switch e.Type {
	case domain.EventDrag:
		m.mu.Lock()
		m.started[e.SessionID] = e.Timestamp
		m.mu.Unlock()
	case domain.EventDragEnd:
		m.Sessions.WithLabelValues(string(e.Outcome)).Inc()
		m.mu.Lock()
		start, ok := m.started[e.SessionID]
		delete(m.started, e.SessionID)
		m.mu.Unlock()
		if ok {
			m.Duration.Observe(e.Timestamp.Sub(start).Seconds())
		}
	case domain.EventShadow:
		m.Shadows.Inc()
	case domain.EventCloned:
		m.Clones.WithLabelValues(string(e.Kind)).Inc()
	}
	return nil
}
