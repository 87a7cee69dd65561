package sat

import (
	"github.com/rhartert/yagh"
)

// varOrder is the decision heuristic: a VSIDS-style, activity-weighted
// max-priority structure over unassigned variables, with phase saving for
// the polarity of the next decision. The priority structure itself is
// github.com/rhartert/yagh's indexed binary heap, keyed by negated
// activity so that Pop always yields the highest-activity variable (yagh
// is a min-heap); ties are broken by insertion order, which for variables
// is the order in which AddVariable was called, i.e. lowest variable ID
// first.
type varOrder struct {
	heap *yagh.IntMap[float64]

	phases      []LBool
	phaseSaving bool
}

func newVarOrder(phaseSaving bool) *varOrder {
	return &varOrder{
		heap:        yagh.New[float64](0),
		phaseSaving: phaseSaving,
	}
}

// addVar registers a newly created variable with an initial activity and
// saved phase.
func (vo *varOrder) addVar(initActivity float64, initPhase bool) {
	v := len(vo.phases)
	vo.phases = append(vo.phases, Lift(initPhase))
	vo.heap.GrowBy(1)
	vo.heap.Put(v, -initActivity)
}

// bump reorders v in the heap after its activity changed to newActivity.
func (vo *varOrder) bump(v int, newActivity float64) {
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -newActivity)
	}
}

// undo reinserts v into the set of decidable variables, e.g. after
// backtracking un-assigns it. val is the value v held just before being
// un-assigned, saved as its next default polarity when phase saving is
// on.
func (vo *varOrder) undo(v int, val LBool, activity float64) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.heap.Put(v, -activity)
}

// next pops the next unassigned variable and returns the literal to try,
// using the saved polarity (defaulting to false on first encounter).
func (vo *varOrder) next(s *Solver) Literal {
	for {
		top, ok := vo.heap.Pop()
		checkInvariant(ok, "decision requested with no unassigned variables left")
		if s.VarValue(top.Elem) != LUnknown {
			continue
		}
		switch vo.phases[top.Elem] {
		case True:
			return PositiveLiteral(top.Elem)
		default:
			return NegativeLiteral(top.Elem)
		}
	}
}
