package sat

// This file implements the trail and backtracking primitives. The trail
// is the single source of truth: assigns/level/reason are updated only
// through enqueue (solver.go) and undoOne below, never independently,
// which is what keeps them from drifting apart.

// assume pushes a new decision level and enqueues l as a decision (reason
// NONE). Returns false if l was already falsified, which can only happen
// if the caller picked an inconsistent literal.
func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.stats.Decisions++
	return s.enqueue(l, nil)
}

// undoOne un-assigns the trail's last literal, saving its polarity for
// phase saving and reinserting its variable into the decision order.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	lastValue := s.VarValue(v)
	s.order.undo(v, lastValue, s.activities[v])

	s.assigns[l] = LUnknown
	s.assigns[l.Opposite()] = LUnknown
	s.reason[v] = nil
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

// cancelOneLevel pops the current decision level, un-assigning every
// literal pushed since it started. The watch index is untouched:
// un-assignment cannot invalidate invariant (W)/(W').
func (s *Solver) cancelOneLevel() {
	n := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; n != 0; n-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil backtracks until the decision level is at most level. A
// restart is cancelUntil(0).
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancelOneLevel()
	}
}
