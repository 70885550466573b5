package contract

import (
	"errors"
	"fmt"
	"math"

	"github.com/ifndefJOSH/rustysensor/quantity"
)

var ErrNoBody = errors.New("formula has no default body")

// Body computes raw output magnitudes from validated inputs. Bodies
// return plain float64s, not Quantities: the engine re-checks every
// output against its declared kind, so an out-of-domain result surfaces
// as a postcondition failure instead of escaping to the caller.
type Body func(in Values) ([]float64, error)

// FormulaSpec binds a named computation to its declared inputs and
// outputs and its ordered contracts. Specs are built once at package
// init, registered, and never mutated afterwards; Eval is safe for
// unlimited concurrent use.
//
// Body may be nil for formulas whose computation needs a caller-bound
// closure (a radiance distribution, an antenna power pattern); those are
// evaluated through EvalWith.
type FormulaSpec struct {
	Name    string
	Params  []Param
	Returns []Param
	Pre     []Contract
	Body    Body
	Post    []Contract
}

// Eval runs the registered body under the spec's contracts:
// arity/kind checks, preconditions in order, body, finiteness scan,
// output domain checks, postconditions in order. The first failure
// short-circuits; later stages never run.
func (s *FormulaSpec) Eval(in ...quantity.Quantity) (Values, error) {
	if s.Body == nil {
		return nil, fmt.Errorf("%w: %q takes a caller-supplied body, use EvalWith", ErrNoBody, s.Name)
	}
	return s.run(s.Body, Values(in))
}

// Eval1 is Eval for the common single-return case.
func (s *FormulaSpec) Eval1(in ...quantity.Quantity) (quantity.Quantity, error) {
	out, err := s.Eval(in...)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return out[0], nil
}

// EvalWith runs a caller-supplied body under the spec's contracts. The
// body must honor the spec's Returns; everything else behaves exactly
// like Eval, including determinism for a fixed body.
func (s *FormulaSpec) EvalWith(body Body, in ...quantity.Quantity) (Values, error) {
	if body == nil {
		return s.Eval(in...)
	}
	return s.run(body, Values(in))
}

// EvalWith1 is EvalWith for the common single-return case.
func (s *FormulaSpec) EvalWith1(body Body, in ...quantity.Quantity) (quantity.Quantity, error) {
	out, err := s.EvalWith(body, in...)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return out[0], nil
}

func (s *FormulaSpec) run(body Body, in Values) (Values, error) {
	// Arity and declared kinds are implicit preconditions.
	if len(in) != len(s.Params) {
		return nil, s.fail(OutcomePreconditionFailed, &Violation{
			Contract:    "arity",
			Class:       ClassPrecondition,
			Description: fmt.Sprintf("formula takes %d argument(s), got %d", len(s.Params), len(in)),
			Values:      s.argRecords(in),
		})
	}
	for i, p := range s.Params {
		if in[i].Kind() != p.Kind {
			return nil, s.fail(OutcomePreconditionFailed, &Violation{
				Contract:    "kind:" + p.Name,
				Class:       ClassPrecondition,
				Description: fmt.Sprintf("parameter %s expects %s, got %s", p.Name, p.Kind, in[i].Kind()),
				Values:      s.argRecords(in),
			})
		}
	}

	for i := range s.Pre {
		c := &s.Pre[i]
		if !c.check(in, nil) {
			return nil, s.fail(OutcomePreconditionFailed, &Violation{
				Contract:    c.Name,
				Class:       ClassPrecondition,
				Description: c.Description,
				Values:      s.argRecords(in),
			})
		}
	}

	raw, err := body(in)
	if err != nil {
		var nf *NumericFailure
		if !errors.As(err, &nf) {
			nf = &NumericFailure{Err: err}
		}
		return nil, &EvalError{Formula: s.Name, Outcome: OutcomeNumericFailed, Numeric: nf}
	}
	if len(raw) != len(s.Returns) {
		// The body broke its own declaration; that is a defect, not
		// a caller error.
		return nil, s.fail(OutcomePostconditionFailed, &Violation{
			Contract:    "returns",
			Class:       ClassPostcondition,
			Description: fmt.Sprintf("body produced %d value(s), declared %d", len(raw), len(s.Returns)),
			Values:      s.argRecords(in),
		})
	}

	// Non-finite outputs are numeric failures regardless of any
	// declared postcondition.
	for i, x := range raw {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, &EvalError{
				Formula: s.Name,
				Outcome: OutcomeNumericFailed,
				Numeric: &NumericFailure{Output: s.Returns[i].Name, Value: x},
			}
		}
	}

	// Every output must land in its declared kind's domain before any
	// declared postcondition runs.
	out := make(Values, len(raw))
	for i, x := range raw {
		ret := s.Returns[i]
		q, qerr := quantity.New(ret.Kind, x)
		if qerr != nil {
			return nil, s.fail(OutcomePostconditionFailed, &Violation{
				Contract:    "domain:" + ret.Name,
				Class:       ClassPostcondition,
				Description: fmt.Sprintf("return %s (%s) must lie in %s", ret.Name, ret.Kind, ret.Kind.Domain()),
				Values: append(s.argRecords(in), ValueRecord{
					Name: ret.Name, Kind: ret.Kind, Magnitude: x,
				}),
			})
		}
		out[i] = q
	}

	for i := range s.Post {
		c := &s.Post[i]
		if !c.check(in, out) {
			return nil, s.fail(OutcomePostconditionFailed, &Violation{
				Contract:    c.Name,
				Class:       ClassPostcondition,
				Description: c.Description,
				Values:      append(s.argRecords(in), s.retRecords(out)...),
			})
		}
	}

	return out, nil
}

func (s *FormulaSpec) fail(outcome Outcome, v *Violation) *EvalError {
	return &EvalError{Formula: s.Name, Outcome: outcome, Violation: v}
}

func (s *FormulaSpec) argRecords(in Values) []ValueRecord {
	recs := make([]ValueRecord, 0, len(in))
	for i, q := range in {
		name := fmt.Sprintf("arg%d", i)
		if i < len(s.Params) {
			name = s.Params[i].Name
		}
		recs = append(recs, ValueRecord{Name: name, Kind: q.Kind(), Magnitude: q.Magnitude()})
	}
	return recs
}

func (s *FormulaSpec) retRecords(out Values) []ValueRecord {
	recs := make([]ValueRecord, 0, len(out))
	for i, q := range out {
		recs = append(recs, ValueRecord{Name: s.Returns[i].Name, Kind: q.Kind(), Magnitude: q.Magnitude()})
	}
	return recs
}

// validate is the registration-time sanity check on a spec's shape.
func (s *FormulaSpec) validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrSpecBadInput)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrSpecBadInput)
	}
	if len(s.Returns) == 0 {
		return fmt.Errorf("%w: %q declares no returns", ErrSpecBadInput, s.Name)
	}
	seen := make(map[string]struct{}, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: %q has an unnamed parameter", ErrSpecBadInput, s.Name)
		}
		if !p.Kind.Valid() {
			return fmt.Errorf("%w: %q parameter %s has invalid kind", ErrSpecBadInput, s.Name, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %q duplicates parameter %s", ErrSpecBadInput, s.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	for _, r := range s.Returns {
		if r.Name == "" {
			return fmt.Errorf("%w: %q has an unnamed return", ErrSpecBadInput, s.Name)
		}
		if !r.Kind.Valid() {
			return fmt.Errorf("%w: %q return %s has invalid kind", ErrSpecBadInput, s.Name, r.Name)
		}
	}
	for _, c := range s.Pre {
		if c.Name == "" || c.check == nil {
			return fmt.Errorf("%w: %q has a malformed precondition", ErrSpecBadInput, s.Name)
		}
		if c.Class != ClassPrecondition {
			return fmt.Errorf("%w: %q lists %q contract %q as a precondition", ErrSpecBadInput, s.Name, c.Class, c.Name)
		}
	}
	for _, c := range s.Post {
		if c.Name == "" || c.check == nil {
			return fmt.Errorf("%w: %q has a malformed postcondition", ErrSpecBadInput, s.Name)
		}
		if c.Class != ClassPostcondition {
			return fmt.Errorf("%w: %q lists %q contract %q as a postcondition", ErrSpecBadInput, s.Name, c.Class, c.Name)
		}
	}
	return nil
}
