package observability

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

func mustQ(t *testing.T, q quantity.Quantity, err error) quantity.Quantity {
	t.Helper()
	if err != nil {
		t.Fatalf("quantity: %v", err)
	}
	return q
}

// ratioSpec drives the collector with a minimal unregistered formula.
func ratioSpec() *contract.FormulaSpec {
	return &contract.FormulaSpec{
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
	}
}

func TestRecordEvaluationCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}

	spec := ratioSpec()
	start := time.Now()
	_, evalErr := spec.Eval(mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(2)))
	collector.RecordEvaluation(spec.Name, evalErr, time.Since(start))
	if evalErr != nil {
		t.Fatalf("Eval: %v", evalErr)
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("test.ratio", "validated")); got != 1 {
		t.Fatalf("formula_evaluations_total validated = %v, want 1", got)
	}

	if count := histogramSampleCount(t, reg, "formula_eval_duration_seconds", map[string]string{
		"formula": "test.ratio",
	}); count != 1 {
		t.Fatalf("formula_eval_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestRecordEvaluationCountsViolations(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}

	spec := ratioSpec()
	_, evalErr := spec.Eval(mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(0)))
	collector.RecordEvaluation(spec.Name, evalErr, time.Microsecond)
	if evalErr == nil {
		t.Fatal("expected a precondition failure for a zero denominator")
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("test.ratio", "precondition_failed")); got != 1 {
		t.Fatalf("formula_evaluations_total precondition_failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.Violations.WithLabelValues("test.ratio", "b_nonzero", "precondition")); got != 1 {
		t.Fatalf("contract_violations_total = %v, want 1", got)
	}
}

func TestRecordEvaluationNumericFailureSkipsViolations(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}

	spec := ratioSpec()
	_, evalErr := spec.EvalWith(func(in contract.Values) ([]float64, error) {
		return []float64{math.Inf(1)}, nil
	}, mustQ(t, quantity.Ratio(1)), mustQ(t, quantity.Ratio(2)))
	collector.RecordEvaluation(spec.Name, evalErr, time.Microsecond)
	if evalErr == nil {
		t.Fatal("expected a numeric failure for an infinite output")
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues("test.ratio", "numeric_failed")); got != 1 {
		t.Fatalf("formula_evaluations_total numeric_failed = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.Violations); got != 0 {
		t.Fatalf("contract_violations_total series = %d, want 0 for a numeric failure", got)
	}
}

func TestMetricsHandlerExposesEvaluationSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}
	collector.SetRegisteredFormulas(5)
	collector.Evaluations.WithLabelValues("em.planck_law", "validated").Inc()
	collector.Violations.WithLabelValues("em.planck_law", "wavelength_positive", "precondition").Inc()
	collector.EvalDurations.WithLabelValues("em.planck_law").Observe(2e-6)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"formula_evaluations_total",
		"contract_violations_total",
		"formula_eval_duration_seconds",
		"registered_formulas",
	} {
		if !strings.Contains(body, metric) {
			t.Fatalf("expected %q in /metrics output", metric)
		}
	}
}

func TestNewEvalCollectorToleratesReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector: %v", err)
	}
	second, err := NewEvalCollector(reg)
	if err != nil {
		t.Fatalf("NewEvalCollector again: %v", err)
	}
	if second.Evaluations != first.Evaluations {
		t.Fatal("re-registration should hand back the existing evaluation counter")
	}
	if second.RegisteredFormulas != first.RegisteredFormulas {
		t.Fatal("re-registration should hand back the existing registry gauge")
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	metrics, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	if len(got) < len(want) {
		return false
	}
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
