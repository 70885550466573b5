// Package contract implements the formula evaluation engine: formulas
// are registered as FormulaSpecs that bind a computation to ordered
// preconditions over its typed inputs and ordered postconditions over
// its outputs. Eval runs the full pipeline deterministically and without
// side effects; the first failed check short-circuits with a typed
// report telling caller error (precondition), numeric instability
// (NaN/Inf) and library defect (postcondition) apart.
package contract

import (
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// Class says when a contract runs relative to the formula body.
type Class string

const (
	ClassPrecondition  Class = "precondition"
	ClassPostcondition Class = "postcondition"
)

// Values is an ordered tuple of quantities; positions match the owning
// FormulaSpec's Params (inputs) or Returns (outputs). Contract
// predicates may index freely: the engine has already checked arity and
// kinds by the time they run.
type Values []quantity.Quantity

// Magnitude returns the magnitude at position i.
func (vs Values) Magnitude(i int) float64 { return vs[i].Magnitude() }

// Param declares one input or output of a formula: a report-friendly
// name and the quantity kind the engine enforces at that position.
type Param struct {
	Name string
	Kind quantity.Kind
}

// Contract is a named predicate attached to a formula. Preconditions
// judge the input tuple; postconditions judge inputs and outputs
// together. The name and description end up verbatim in violation
// reports, so they should say what must hold in physical terms.
type Contract struct {
	Name        string
	Description string
	Class       Class

	check func(in, out Values) bool
}

// Requires builds a precondition over the input tuple.
func Requires(name, description string, check func(in Values) bool) Contract {
	return Contract{
		Name:        name,
		Description: description,
		Class:       ClassPrecondition,
		check:       func(in, _ Values) bool { return check(in) },
	}
}

// Ensures builds a postcondition over the input and output tuples.
func Ensures(name, description string, check func(in, out Values) bool) Contract {
	return Contract{
		Name:        name,
		Description: description,
		Class:       ClassPostcondition,
		check:       check,
	}
}
