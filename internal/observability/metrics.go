package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ifndefJOSH/rustysensor/contract"
)

// EvalCollector bundles Prometheus metrics for formula evaluation and
// provides a ready-to-serve /metrics handler.
type EvalCollector struct {
	gatherer prometheus.Gatherer

	Evaluations   *prometheus.CounterVec
	Violations    *prometheus.CounterVec
	EvalDurations *prometheus.HistogramVec

	RegisteredFormulas prometheus.Gauge
}

// NewEvalCollector registers evaluation metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEvalCollector(reg prometheus.Registerer) (*EvalCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "formula_evaluations_total",
		Help: "Total number of formula evaluations, labeled by formula name and outcome.",
	}, []string{"formula", "outcome"})
	evaluations, err := registerCounterVec(reg, evaluations, "formula_evaluations_total")
	if err != nil {
		return nil, err
	}

	violations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "contract_violations_total",
		Help: "Total number of contract violations, labeled by formula, contract, and contract class.",
	}, []string{"formula", "contract", "class"})
	violations, err = registerCounterVec(reg, violations, "contract_violations_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "formula_eval_duration_seconds",
		Help:    "Formula evaluation latency in seconds.",
		Buckets: []float64{1e-6, 2.5e-6, 5e-6, 1e-5, 2.5e-5, 5e-5, 1e-4, 2.5e-4, 5e-4, 1e-3},
	}, []string{"formula"})
	durations, err = registerHistogramVec(reg, durations, "formula_eval_duration_seconds")
	if err != nil {
		return nil, err
	}

	registered, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registered_formulas",
		Help: "Current number of formulas in the registry.",
	}), "registered_formulas")
	if err != nil {
		return nil, err
	}

	return &EvalCollector{
		gatherer:           gatherer,
		Evaluations:        evaluations,
		Violations:         violations,
		EvalDurations:      durations,
		RegisteredFormulas: registered,
	}, nil
}

// RecordEvaluation records one evaluation: its outcome, its duration,
// and, when a contract failed, the violated contract. A nil err counts
// as a validated evaluation.
func (c *EvalCollector) RecordEvaluation(formula string, err error, d time.Duration) {
	if c == nil {
		return
	}

	outcome := contract.OutcomeOf(err)
	if c.Evaluations != nil {
		c.Evaluations.WithLabelValues(formula, outcome.String()).Inc()
	}
	if c.EvalDurations != nil {
		c.EvalDurations.WithLabelValues(formula).Observe(d.Seconds())
	}

	var ee *contract.EvalError
	if c.Violations != nil && errors.As(err, &ee) && ee.Violation != nil {
		c.Violations.WithLabelValues(formula, ee.Violation.Contract, string(ee.Violation.Class)).Inc()
	}
}

// SetRegisteredFormulas updates the registry size gauge.
func (c *EvalCollector) SetRegisteredFormulas(count int) {
	if c == nil || c.RegisteredFormulas == nil {
		return
	}
	c.RegisteredFormulas.Set(float64(count))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EvalCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
