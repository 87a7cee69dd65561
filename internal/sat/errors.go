package sat

import "errors"

// Error taxonomy: only malformed input and internal invariant violations
// are faults; exhausted budgets and cancellation are ordinary Unknown
// results, not errors, and are reported through Result/StopReason instead.

// ErrRootLevelOnly is returned by AddClause when called after search has
// started (clauses may only be added at decision level 0).
var ErrRootLevelOnly = errors.New("sat: clauses can only be added at the root level")

// ErrMalformedClause is returned by strict-mode input handling for a clause
// line that could not be parsed into literals.
var ErrMalformedClause = errors.New("sat: malformed clause")

// ErrPoisoned is returned by any operation attempted on a solver that has
// already raised an internal invariant fault. The instance must be
// discarded; there is no recovery path.
var ErrPoisoned = errors.New("sat: solver instance is poisoned after an internal invariant violation")

// invariantViolation is the payload of the panic raised by checkInvariant.
// It is recovered at the single boundary (Solve) that is allowed to turn
// an internal fault into something a caller can observe, so that every
// other internal function can simply panic without plumbing errors
// through the hot path.
type invariantViolation struct {
	msg string
}

func (e *invariantViolation) Error() string {
	return "sat: internal invariant violation: " + e.msg
}

// checkInvariant panics with an invariantViolation if cond is false. It
// guards assignment consistency, the watched-literal layout, and the
// "never delete a reason clause" rule at the points in the code where
// they could plausibly be broken by a future change; it is not meant to
// be exhaustive on every call, only on the ones that are cheap to check
// while already holding the relevant state in hand.
func checkInvariant(cond bool, msg string) {
	if !cond {
		panic(&invariantViolation{msg: msg})
	}
}
