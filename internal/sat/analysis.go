package sat

// analyze implements first-UIP conflict analysis. Given the
// clause confl that was found falsified at the current decision level, it
// walks the trail from its tail, resolving the running clause against the
// reason of each seen current-level literal, until exactly one
// current-level literal remains unresolved: the first UIP. It returns the
// learned clause (position 0 is the negation of the UIP) and the backjump
// level (the second-highest decision level among the clause's literals,
// or 0 if there is none).
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	path := 0 // literals from the current level still to resolve

	s.tmpLearnts = append(s.tmpLearnts[:0], -1) // slot 0 reserved for the UIP
	nextTrailIdx := len(s.trail) - 1

	l := Literal(-1) // -1 stands for "the conflict itself", not a real literal
	s.seenVar.Clear()
	backtrackLevel := 0
	currentLevel := s.decisionLevel()

	for {
		for _, q := range s.explain(confl, l) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)
			s.bumpVarActivity(q)

			if s.level[v] == currentLevel {
				path++
				continue
			}
			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := s.level[v]; lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		// Advance to the next trail literal whose variable was marked
		// seen; that is the next node to resolve against (or the UIP).
		for {
			l = s.trail[nextTrailIdx]
			nextTrailIdx--
			if s.seenVar.Contains(l.VarID()) {
				break
			}
		}
		confl = s.reason[l.VarID()]

		path--
		if path <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()
	return s.tmpLearnts, backtrackLevel
}

// explain returns the set of literals whose disjunction justifies l: the
// negation of confl's other literals if l was implied by confl, or the
// negation of every literal of confl if confl is itself the conflict (l
// == -1). This lazily reconstructs one step of the implication graph
// without ever materializing it as nodes and edges.
func (s *Solver) explain(confl *Clause, l Literal) []Literal {
	s.tmpReason = s.tmpReason[:0]
	if l == -1 {
		return confl.explainConflict(s, s.tmpReason)
	}
	return confl.explainAssign(s, s.tmpReason)
}

// record installs a learned clause produced by analyze: it is added to
// the database and watch index, and its FUIP literal is immediately
// enqueued with the new clause as reason (the clause is unit right after
// backjumping to the returned backtrack level).
func (s *Solver) record(learnt []Literal) {
	c, _ := newClause(s, learnt, true)
	s.enqueue(learnt[0], c)
	if c != nil {
		c.protected = true
		s.learned = append(s.learned, c)
		s.stats.LearnedClauses++
		s.restart.onLearn(c.lbd)
	}
}
