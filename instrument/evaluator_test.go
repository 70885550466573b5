package instrument

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/internal/logging"
	"github.com/ifndefJOSH/rustysensor/internal/observability"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

func mustQ(t *testing.T, q quantity.Quantity, err error) quantity.Quantity {
	t.Helper()
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	return q
}

// ratioRegistry builds a private registry holding one formula, q = a/b,
// so tests never freeze the package-wide default.
func ratioRegistry(t *testing.T) *contract.Registry {
	t.Helper()
	reg := contract.NewRegistry()
	reg.MustRegister(&contract.FormulaSpec{
		Name: "test.ratio",
		Params: []contract.Param{
			{Name: "a", Kind: quantity.KindRatio},
			{Name: "b", Kind: quantity.KindRatio},
		},
		Returns: []contract.Param{{Name: "q", Kind: quantity.KindRatio}},
		Pre: []contract.Contract{
			contract.Requires("b_nonzero", "denominator must be non-zero",
				func(in contract.Values) bool { return in.Magnitude(1) != 0 }),
		},
		Body: func(in contract.Values) ([]float64, error) {
			return []float64{in.Magnitude(0) / in.Magnitude(1)}, nil
		},
	})
	return reg
}

func TestEvaluatorEvaluatesAndRecords(t *testing.T) {
	reg := ratioRegistry(t)
	promReg := prometheus.NewRegistry()
	collector, err := observability.NewEvalCollector(promReg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}

	e := NewEvaluator(logging.Noop(), WithRegistry(reg), WithRecorder(collector))
	if !reg.Frozen() {
		t.Fatal("construction should freeze the bound registry")
	}

	out, err := e.Evaluate(context.Background(), "test.ratio",
		mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(4)))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got := out.Magnitude(0); got != 0.25 {
		t.Fatalf("test.ratio = %g, want 0.25", got)
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("test.ratio", "validated")); got != 1 {
		t.Fatalf("formula_evaluations_total validated = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.RegisteredFormulas); got != 1 {
		t.Fatalf("registered_formulas = %v, want 1", got)
	}
}

func TestEvaluatorUnknownFormula(t *testing.T) {
	e := NewEvaluator(logging.Noop(), WithRegistry(ratioRegistry(t)))

	_, err := e.Evaluate(context.Background(), "test.missing")
	if !errors.Is(err, ErrUnknownFormula) {
		t.Fatalf("err = %v, want ErrUnknownFormula", err)
	}
}

func TestEvaluatorRecordsPreconditionFailure(t *testing.T) {
	promReg := prometheus.NewRegistry()
	collector, err := observability.NewEvalCollector(promReg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}
	e := NewEvaluator(logging.Noop(), WithRegistry(ratioRegistry(t)), WithRecorder(collector))

	_, err = e.Evaluate(context.Background(), "test.ratio",
		mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(0)))
	if !errors.Is(err, contract.ErrPrecondition) {
		t.Fatalf("err = %v, want a precondition failure", err)
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("test.ratio", "precondition_failed")); got != 1 {
		t.Fatalf("formula_evaluations_total precondition_failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Violations.WithLabelValues("test.ratio", "b_nonzero", "precondition")); got != 1 {
		t.Fatalf("contract_violations_total = %v, want 1", got)
	}
}

func TestEvaluate1(t *testing.T) {
	e := NewEvaluator(logging.Noop(), WithRegistry(ratioRegistry(t)))

	q, err := e.Evaluate1(context.Background(), "test.ratio",
		mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(2)))
	if err != nil {
		t.Fatalf("Evaluate1: %v", err)
	}
	if q.Magnitude() != 0.5 {
		t.Fatalf("test.ratio = %g, want 0.5", q.Magnitude())
	}
	if q.Kind() != quantity.KindRatio {
		t.Fatalf("kind = %v, want %v", q.Kind(), quantity.KindRatio)
	}
}

func TestEvaluatorFreezesRegistry(t *testing.T) {
	reg := ratioRegistry(t)
	NewEvaluator(logging.Noop(), WithRegistry(reg))

	err := reg.Register(&contract.FormulaSpec{
		Name:    "test.late",
		Params:  []contract.Param{{Name: "x", Kind: quantity.KindRatio}},
		Returns: []contract.Param{{Name: "y", Kind: quantity.KindRatio}},
		Body: func(in contract.Values) ([]float64, error) {
			return []float64{in.Magnitude(0)}, nil
		},
	})
	if !errors.Is(err, contract.ErrRegistryFrozen) {
		t.Fatalf("late Register err = %v, want ErrRegistryFrozen", err)
	}
}

func TestEvaluatorListsFormulas(t *testing.T) {
	e := NewEvaluator(logging.Noop(), WithRegistry(ratioRegistry(t)))

	names := e.Formulas()
	if len(names) != 1 || names[0] != "test.ratio" {
		t.Fatalf("Formulas() = %v, want [test.ratio]", names)
	}
}
