package sat

// checkStateInvariants re-validates the coherence of the trail, the
// assignment arrays, and the watch index. It is called at every
// propagation fixpoint when Options.DebugChecks is set, and panics (via
// checkInvariant) on the first violation it finds. The checks mirror the
// properties enqueue/undoOne and the watch maintenance are supposed to
// preserve; they are quadratic-ish in the instance size and therefore
// gated behind the debug flag.
func (s *Solver) checkStateInvariants() {
	// Trail and assignment map are in one-to-one correspondence.
	assigned := 0
	for v := 0; v < s.NumVariables(); v++ {
		if s.VarValue(v) != LUnknown {
			assigned++
		}
	}
	checkInvariant(assigned == len(s.trail), "assigned-variable count does not match trail length")

	for _, l := range s.trail {
		checkInvariant(s.LitValue(l) == True, "trail literal is not true under the assignment")

		v := l.VarID()
		checkInvariant(s.level[v] >= 0, "trail literal has no decision level")

		r := s.reason[v]
		if r == nil {
			continue
		}
		// An implied literal's reason clause must contain the literal, and
		// every other literal of it must be false. Assignments are only
		// retracted by backtracking, so "false now" subsumes "false at the
		// trail prefix where the implication fired".
		inClause := false
		for _, q := range r.literals {
			if q == l {
				inClause = true
				continue
			}
			checkInvariant(s.LitValue(q) == False, "reason clause literal is not false")
		}
		checkInvariant(inClause, "implied literal does not occur in its reason clause")
	}

	// Decision-level checkpoints: each recorded start is a decision with no
	// reason, assigned at that level.
	for d, start := range s.trailLim {
		if start == len(s.trail) {
			continue // level opened, decision enqueue rejected (caller handles)
		}
		l := s.trail[start]
		v := l.VarID()
		checkInvariant(s.reason[v] == nil, "decision variable has a reason clause")
		checkInvariant(s.level[v] == d+1, "decision variable level does not match its checkpoint")
	}

	// Watch index: every live clause of length >= 2 is watched on the
	// opposites of its first two literals.
	for _, pool := range [][]*Clause{s.constraints, s.learned} {
		for _, c := range pool {
			if c.Len() < 2 {
				continue
			}
			checkInvariant(s.isWatched(c, c.literals[0].Opposite()), "clause missing from its first watch list")
			checkInvariant(s.isWatched(c, c.literals[1].Opposite()), "clause missing from its second watch list")
		}
	}
}

func (s *Solver) isWatched(c *Clause, on Literal) bool {
	for _, w := range s.watchers[on] {
		if w.clause == c {
			return true
		}
	}
	return false
}
