package sat

// dpllFrame records, for one decision level, whether the opposite
// polarity of that level's decision has already been tried. DPLL shares
// the watched-literal propagator and the clause database with CDCL but
// replaces non-chronological backjumping with chronological
// backtrack-and-flip.
type dpllFrame struct {
	triedOther bool
}

// solveDPLL implements the DPLL strategy: the same BCP as CDCL, no
// learning, and on conflict a chronological backtrack that first tries
// the untried polarity of the most recent decision before popping further.
func (s *Solver) solveDPLL() Result {
	if s.unsat {
		return Unsatisfiable
	}

	if s.opts.UsePureLiteral {
		s.eliminatePureLiteralsOnce()
		if s.unsat {
			return Unsatisfiable
		}
	}

	var stack []dpllFrame

	for {
		if conflict := s.propagate(); conflict != nil {
			s.stats.Conflicts++

			resumed := false
			for s.decisionLevel() > 0 {
				level := s.decisionLevel()
				triedOther := stack[level-1].triedOther
				lastDecision := s.trail[s.trailLim[level-1]]

				s.cancelUntil(level - 1)
				stack = stack[:level-1]

				if !triedOther {
					stack = append(stack, dpllFrame{triedOther: true})
					if s.assume(lastDecision.Opposite()) {
						resumed = true
						break // resume propagation with the flipped polarity
					}
					// Flipping still conflicts immediately: pop further.
					s.cancelUntil(level - 1)
					stack = stack[:level-1]
				}
			}
			if resumed {
				continue
			}
			s.unsat = true
			return Unsatisfiable
		}

		if s.shouldStop() {
			s.cancelUntil(0)
			return Unknown
		}

		if s.NumAssigns() == s.NumVariables() {
			s.saveModel()
			s.cancelUntil(0)
			return Satisfiable
		}

		l := s.order.next(s)
		stack = append(stack, dpllFrame{})
		s.assume(l)
	}
}

// eliminatePureLiteralsOnce scans the original clause set once for
// literals whose opposite never occurs, and assigns them at the root
// level. Pure-literal scanning is incompatible with incremental clause
// learning under backtracking; DPLL never learns, so it is safe to run a
// single pass before the search starts.
func (s *Solver) eliminatePureLiteralsOnce() {
	seenPos := make([]bool, s.NumVariables())
	seenNeg := make([]bool, s.NumVariables())

	for _, c := range s.constraints {
		for _, l := range c.literals {
			if l.IsPositive() {
				seenPos[l.VarID()] = true
			} else {
				seenNeg[l.VarID()] = true
			}
		}
	}

	for v := 0; v < s.NumVariables(); v++ {
		switch {
		case seenPos[v] && !seenNeg[v]:
			s.enqueue(PositiveLiteral(v), nil)
		case seenNeg[v] && !seenPos[v]:
			s.enqueue(NegativeLiteral(v), nil)
		}
	}

	if conflict := s.propagate(); conflict != nil {
		s.unsat = true
	}
}
