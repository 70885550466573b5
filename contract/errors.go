package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ifndefJOSH/rustysensor/quantity"
)

var (
	ErrPrecondition  = errors.New("precondition violated")
	ErrNumeric       = errors.New("numeric failure")
	ErrPostcondition = errors.New("postcondition violated")
)

// Outcome is the terminal state of a single evaluation. Every evaluation
// starts Pending and ends in exactly one of the other four states.
type Outcome int

const (
	OutcomePending Outcome = iota // not (or not yet) evaluated
	OutcomeValidated
	OutcomePreconditionFailed
	OutcomeNumericFailed
	OutcomePostconditionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeValidated:
		return "validated"
	case OutcomePreconditionFailed:
		return "precondition_failed"
	case OutcomeNumericFailed:
		return "numeric_failed"
	case OutcomePostconditionFailed:
		return "postcondition_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// OutcomeOf maps an Eval result error to its Outcome: nil means
// Validated, an *EvalError carries its own outcome, anything else (a
// failed lookup, a DomainError from input construction) never reached
// the pipeline and stays Pending.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeValidated
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Outcome
	}
	return OutcomePending
}

// ValueRecord snapshots one named value that a failed contract judged.
// It deliberately carries kind and magnitude rather than a Quantity so
// out-of-domain outputs can be reported too.
type ValueRecord struct {
	Name      string
	Kind      quantity.Kind
	Magnitude float64
}

func (r ValueRecord) String() string {
	if unit := r.Kind.Unit(); unit != "" {
		return fmt.Sprintf("%s = %g %s", r.Name, r.Magnitude, unit)
	}
	return fmt.Sprintf("%s = %g (%s)", r.Name, r.Magnitude, r.Kind)
}

// Violation records a failed contract together with the values it was
// judged against. Class tells caller error (precondition) apart from
// library defect (postcondition).
type Violation struct {
	Contract    string
	Class       Class
	Description string
	Values      []ValueRecord
}

func (v *Violation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q violated", v.Class, v.Contract)
	if v.Description != "" {
		fmt.Fprintf(&b, ": %s", v.Description)
	}
	if len(v.Values) > 0 {
		parts := make([]string, len(v.Values))
		for i, r := range v.Values {
			parts[i] = r.String()
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, ", "))
	}
	return b.String()
}

// NumericFailure reports a non-finite value produced by a body whose
// contracts were otherwise satisfied: NaN, ±Inf, a division by zero.
// Bodies may return one directly; the engine also raises it when an
// output fails the finiteness scan. It is distinct from a Violation:
// the contracts held, the arithmetic did not.
type NumericFailure struct {
	Op     string  // what the body was computing, when it says
	Output string  // offending return name, when found on the output scan
	Value  float64 // the non-finite value
	Err    error   // underlying cause, when the body returned an error
}

func (f *NumericFailure) Error() string {
	var b strings.Builder
	b.WriteString("numeric failure")
	if f.Op != "" {
		fmt.Fprintf(&b, " in %s", f.Op)
	}
	if f.Output != "" {
		fmt.Fprintf(&b, ": output %q = %g", f.Output, f.Value)
	}
	if f.Err != nil {
		fmt.Fprintf(&b, ": %v", f.Err)
	}
	return b.String()
}

func (f *NumericFailure) Unwrap() error { return f.Err }

// EvalError is the failure report for one evaluation. Exactly one of
// Violation and Numeric is set, per Outcome. It matches the sentinel for
// its outcome under errors.Is.
type EvalError struct {
	Formula   string
	Outcome   Outcome
	Violation *Violation
	Numeric   *NumericFailure
}

func (e *EvalError) Error() string {
	switch e.Outcome {
	case OutcomeNumericFailed:
		return fmt.Sprintf("%s: %v", e.Formula, e.Numeric)
	case OutcomePreconditionFailed, OutcomePostconditionFailed:
		return fmt.Sprintf("%s: %v", e.Formula, e.Violation)
	default:
		return fmt.Sprintf("%s: %s", e.Formula, e.Outcome)
	}
}

func (e *EvalError) Unwrap() error {
	switch e.Outcome {
	case OutcomePreconditionFailed:
		return ErrPrecondition
	case OutcomeNumericFailed:
		return ErrNumeric
	case OutcomePostconditionFailed:
		return ErrPostcondition
	default:
		return nil
	}
}
