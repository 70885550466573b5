// Package instrument layers observability over the pure evaluation
// engine: an Evaluator resolves registered formulas by name and wraps
// each evaluation with outcome metrics, structured logging, and a
// span. The engine itself stays side-effect free; everything recorded
// here is read off the returned error.
package instrument

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/internal/logging"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

const tracerName = "github.com/ifndefJOSH/rustysensor/instrument"

// ErrUnknownFormula reports an Evaluate call naming a formula the bound
// registry does not hold.
var ErrUnknownFormula = errors.New("unknown formula")

// Recorder receives one record per evaluation plus registry-size
// updates. The module's Prometheus collector satisfies it; tests may
// substitute their own.
type Recorder interface {
	RecordEvaluation(formula string, err error, elapsed time.Duration)
	SetRegisteredFormulas(count int)
}

// Evaluator evaluates registered formulas by name. Construction
// freezes the bound registry, so the formula table the Evaluator
// serves can never change underneath it.
type Evaluator struct {
	reg    *contract.Registry
	rec    Recorder
	log    logging.Logger
	tracer trace.Tracer
}

// EvaluatorOption customises Evaluator construction.
type EvaluatorOption func(*Evaluator)

// WithRegistry binds the Evaluator to reg instead of the package-wide
// default registry.
func WithRegistry(reg *contract.Registry) EvaluatorOption {
	return func(e *Evaluator) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// WithRecorder attaches a metrics recorder that receives one record per
// evaluation.
func WithRecorder(rec Recorder) EvaluatorOption {
	return func(e *Evaluator) {
		e.rec = rec
	}
}

// NewEvaluator builds an Evaluator over the default registry, freezes
// the registry it ends up bound to, and reports the frozen formula
// count to the recorder, if any.
func NewEvaluator(log logging.Logger, opts ...EvaluatorOption) *Evaluator {
	if log == nil {
		log = logging.Noop()
	}
	e := &Evaluator{
		reg: contract.Default,
		log: log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.reg.Freeze()
	e.tracer = otel.Tracer(tracerName)
	if e.rec != nil {
		e.rec.SetRegisteredFormulas(e.reg.Len())
	}
	return e
}

// Formulas lists the names the Evaluator can evaluate, sorted.
func (e *Evaluator) Formulas() []string { return e.reg.Names() }

// Evaluate looks up formula and runs it on in, recording the outcome.
// Precondition and numeric failures are logged as caller-side warnings;
// a postcondition failure is a defect in the formula itself and logs as
// an error. The returned error is the engine's own, unchanged.
func (e *Evaluator) Evaluate(ctx context.Context, formula string, in ...quantity.Quantity) (contract.Values, error) {
	spec := e.reg.Lookup(formula)
	if spec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, formula)
	}

	ctx, span := e.tracer.Start(ctx, "Eval/"+formula,
		trace.WithAttributes(attribute.String("formula", formula)))
	defer span.End()

	ctx, log := logging.WithEvalLogger(ctx, e.log)
	log = log.With(logging.String("formula", formula))
	span.SetAttributes(attribute.String("eval_id", logging.EvalIDFromContext(ctx)))

	start := time.Now()
	out, err := spec.Eval(in...)
	elapsed := time.Since(start)

	if e.rec != nil {
		e.rec.RecordEvaluation(formula, err, elapsed)
	}

	outcome := contract.OutcomeOf(err)
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	if err != nil {
		span.RecordError(err)
	}

	switch outcome {
	case contract.OutcomeValidated:
		log.Debug(ctx, "formula validated", logging.Any("elapsed", elapsed))
	case contract.OutcomePostconditionFailed:
		log.Error(ctx, "formula postcondition violated", logging.String("error", err.Error()))
	default:
		log.Warn(ctx, "formula evaluation failed",
			logging.String("outcome", outcome.String()),
			logging.String("error", err.Error()))
	}

	return out, err
}

// Evaluate1 is Evaluate for the common single-return case.
func (e *Evaluator) Evaluate1(ctx context.Context, formula string, in ...quantity.Quantity) (quantity.Quantity, error) {
	out, err := e.Evaluate(ctx, formula, in...)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return out[0], nil
}
