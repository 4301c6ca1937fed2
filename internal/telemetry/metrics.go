// Package telemetry exposes Prometheus metrics about running matches. It
// observes the Action/Event protocol from the outside and never touches
// engine state.
package telemetry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Collector bundles the match metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Events   *prometheus.CounterVec
	Goals    *prometheus.CounterVec
	Actions  *prometheus.CounterVec
	Ticks    prometheus.Counter
	Sessions prometheus.Gauge
}

// NewCollector registers the metrics against reg, defaulting to the global
// Prometheus registry when nil. Registering twice against the same registry
// reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pong_events_total",
		Help: "Engine events delivered to front-ends, labeled by kind.",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	goals, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pong_goals_total",
		Help: "Goals scored, labeled by scoring player.",
	}, []string{"player"}))
	if err != nil {
		return nil, err
	}

	actions, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pong_actions_total",
		Help: "Actions processed, labeled by action and result.",
	}, []string{"action", "result"}))
	if err != nil {
		return nil, err
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pong_ticks_total",
		Help: "Physics ticks executed across all matches.",
	}))
	if err != nil {
		return nil, err
	}

	sessions, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pong_sessions_active",
		Help: "Matches currently attached to a front-end.",
	}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer: gatherer,
		Events:   events,
		Goals:    goals,
		Actions:  actions,
		Ticks:    ticks,
		Sessions: sessions,
	}, nil
}

// Observe records one event.
func (c *Collector) Observe(ev engine.Event) {
	if c == nil || ev == nil {
		return
	}
	c.Events.WithLabelValues(ev.Kind()).Inc()

	if g, ok := ev.(engine.GoalEvent); ok {
		c.Goals.WithLabelValues(g.Player.String()).Inc()
	}
}

// Wrap returns a sink that records each event before passing it on.
func (c *Collector) Wrap(next engine.Sink) engine.Sink {
	if c == nil {
		return next
	}
	return func(ev engine.Event) {
		c.Observe(ev)
		if next != nil {
			next(ev)
		}
	}
}

// Process hands a to e and records the result. Events reach emit unchanged;
// wrap emit to count them too. Ticks are counted from the clock: a Time
// action that finds the engine running executes one tick per whole FrameTime
// between the old clock and its target.
func (c *Collector) Process(e *engine.Engine, a engine.Action, emit engine.Sink) error {
	if c == nil {
		return e.Process(a, emit)
	}
	clock, running := e.Clock(), e.State() == engine.StateRunning

	err := e.Process(a, emit)
	c.ObserveAction(a, err)

	if ta, ok := a.(engine.TimeAction); ok && err == nil && running && ta.T >= clock {
		c.Ticks.Add(float64((ta.T - clock) / engine.FrameTime))
	}
	return err
}

// ObserveAction records the outcome of processing a.
func (c *Collector) ObserveAction(a engine.Action, err error) {
	if c == nil || a == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, engine.ErrNotInitialized):
		result = "not_initialized"
	case err != nil:
		result = "error"
	}
	c.Actions.WithLabelValues(a.Name(), result).Inc()
}

// SessionStarted and SessionEnded track attached front-ends.
func (c *Collector) SessionStarted() {
	if c != nil {
		c.Sessions.Inc()
	}
}

func (c *Collector) SessionEnded() {
	if c != nil {
		c.Sessions.Dec()
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("telemetry: register counter vec: %w", err)
	}
	return cv, nil
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("telemetry: register counter: %w", err)
	}
	return c, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("telemetry: register gauge: %w", err)
	}
	return g, nil
}
