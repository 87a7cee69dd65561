package sat

// dpElimRecord remembers, for one Davis-Putnam variable elimination step,
// the clauses that mentioned the eliminated variable at the time it was
// removed. Back-substitution replays these records in reverse order once
// a full assignment to every other variable is known, picking whichever
// polarity of v satisfies them all — DP's resolution step guarantees at
// least one polarity always will, given the rest of the assignment.
type dpElimRecord struct {
	v       int
	clauses [][]Literal
}

// solveDP implements the Davis-Putnam procedure: no trail,
// just repeated unit propagation to a fixpoint, pure-literal elimination,
// and variable elimination by resolution, until the clause set is empty
// (SAT) or contains the empty clause (UNSAT).
func (s *Solver) solveDP() Result {
	if s.unsat {
		return Unsatisfiable
	}

	clauses := s.extractClauses()
	assignment := make([]LBool, s.NumVariables())
	eliminated := make([]bool, s.NumVariables())
	var records []dpElimRecord

	for {
		var conflict bool
		clauses, conflict = dpUnitPropagate(clauses, assignment)
		if conflict {
			return Unsatisfiable
		}

		if s.opts.UsePureLiteral {
			clauses = dpEliminatePureLiterals(clauses, assignment, eliminated)
		}

		if len(clauses) == 0 {
			s.backSubstituteDP(assignment, records)
			s.modelFromAssignment(assignment)
			return Satisfiable
		}

		v := dpSelectVariable(clauses, eliminated)
		if v < 0 {
			return Unsatisfiable // only empty clauses remain
		}

		var rec [][]Literal
		clauses, rec = dpEliminateVariable(clauses, v)
		records = append(records, dpElimRecord{v: v, clauses: rec})
		eliminated[v] = true
		s.stats.Decisions++ // one variable-elimination "step"
	}
}

// dpUnitPropagate repeatedly finds a unit clause, records its assignment,
// and removes satisfied clauses / shrinks falsified literals, until no
// unit clause remains or a conflict (empty clause) is produced.
func dpUnitPropagate(clauses [][]Literal, assignment []LBool) ([][]Literal, bool) {
	for {
		unitLit, found := -1, false
		for _, c := range clauses {
			if len(c) == 1 {
				unitLit, found = int(c[0]), true
				break
			}
		}
		if !found {
			return clauses, false
		}

		lit := Literal(unitLit)
		v := lit.VarID()
		want := Lift(lit.IsPositive())
		if assignment[v] != LUnknown && assignment[v] != want {
			return clauses, true
		}
		assignment[v] = want

		next := clauses[:0]
		for _, c := range clauses {
			satisfied := false
			kept := c[:0]
			for _, l := range c {
				if l == lit {
					satisfied = true
					break
				}
				if l == lit.Opposite() {
					continue // discard falsified literal
				}
				kept = append(kept, l)
			}
			if satisfied {
				continue
			}
			if len(kept) == 0 {
				return nil, true
			}
			next = append(next, kept)
		}
		clauses = next
	}
}

// dpEliminatePureLiterals assigns every literal whose opposite no longer
// occurs anywhere in the clause set, then drops every clause it satisfies.
func dpEliminatePureLiterals(clauses [][]Literal, assignment []LBool, eliminated []bool) [][]Literal {
	occursPos := map[int]bool{}
	occursNeg := map[int]bool{}
	for _, c := range clauses {
		for _, l := range c {
			if l.IsPositive() {
				occursPos[l.VarID()] = true
			} else {
				occursNeg[l.VarID()] = true
			}
		}
	}

	pure := map[Literal]bool{}
	for v, pos := range occursPos {
		if pos && !occursNeg[v] {
			pure[PositiveLiteral(v)] = true
		}
	}
	for v, neg := range occursNeg {
		if neg && !occursPos[v] {
			pure[NegativeLiteral(v)] = true
		}
	}
	if len(pure) == 0 {
		return clauses
	}

	for l := range pure {
		assignment[l.VarID()] = Lift(l.IsPositive())
		eliminated[l.VarID()] = true
	}

	next := clauses[:0]
	for _, c := range clauses {
		keep := true
		for _, l := range c {
			if pure[l] {
				keep = false
				break
			}
		}
		if keep {
			next = append(next, c)
		}
	}
	return next
}

// dpSelectVariable returns the lowest-ID variable that still occurs in
// some clause, or -1 if none remain (every remaining clause is already
// empty, a conflict dpUnitPropagate could not see because it only acts on
// unit clauses).
func dpSelectVariable(clauses [][]Literal, eliminated []bool) int {
	best := -1
	for _, c := range clauses {
		for _, l := range c {
			v := l.VarID()
			if eliminated[v] {
				continue
			}
			if best < 0 || v < best {
				best = v
			}
		}
	}
	return best
}

// dpEliminateVariable replaces every clause mentioning v with the set of
// non-tautological resolvents on v, deduplicated via
// canonicalClause, and returns the clauses that mentioned v so the caller
// can back-substitute a value for v later.
func dpEliminateVariable(clauses [][]Literal, v int) (result [][]Literal, mentioning [][]Literal) {
	pos := PositiveLiteral(v)
	neg := NegativeLiteral(v)

	var posClauses, negClauses, rest [][]Literal
	for _, c := range clauses {
		hasPos, hasNeg := false, false
		for _, l := range c {
			if l == pos {
				hasPos = true
			}
			if l == neg {
				hasNeg = true
			}
		}
		switch {
		case hasPos:
			posClauses = append(posClauses, c)
			mentioning = append(mentioning, c)
		case hasNeg:
			negClauses = append(negClauses, c)
			mentioning = append(mentioning, c)
		default:
			rest = append(rest, c)
		}
	}

	seen := map[clauseKey]bool{}
	result = append([][]Literal(nil), rest...)

	for _, pc := range posClauses {
		for _, nc := range negClauses {
			resolvent := make([]Literal, 0, len(pc)+len(nc)-2)
			for _, l := range pc {
				if l != pos {
					resolvent = append(resolvent, l)
				}
			}
			for _, l := range nc {
				if l != neg {
					resolvent = append(resolvent, l)
				}
			}
			sorted, key, ok := canonicalClause(resolvent)
			if !ok || seen[key] {
				continue
			}
			seen[key] = true
			if len(sorted) == 0 {
				return [][]Literal{{}}, mentioning // the empty clause, UNSAT
			}
			result = append(result, sorted)
		}
	}
	return result, mentioning
}

// backSubstituteDP assigns a value to every variable eliminated by
// resolution (as opposed to fixed by unit propagation or pure-literal
// elimination), processing elimination records in reverse order so that
// every other variable a record's clauses mention is already assigned by
// the time the record is replayed.
func (s *Solver) backSubstituteDP(assignment []LBool, records []dpElimRecord) {
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if assignment[rec.v] != LUnknown {
			continue // a later pure-literal pass may have already fixed it
		}
		assignment[rec.v] = True
		if !allSatisfied(rec.clauses, assignment) {
			assignment[rec.v] = False
		}
	}
	// Any variable touched by neither propagation, pure-literal
	// elimination, nor resolution (absent from the formula entirely) is
	// unconstrained; leave it at its zero value, which modelFromAssignment
	// maps to false.
}

func allSatisfied(clauses [][]Literal, assignment []LBool) bool {
	for _, c := range clauses {
		sat := false
		for _, l := range c {
			// A variable still LUnknown here stays LUnknown forever and is
			// reported as false by modelFromAssignment; evaluate it the
			// same way so back-substitution picks a polarity consistent
			// with the model actually returned.
			val := assignment[l.VarID()]
			if val == LUnknown {
				val = False
			}
			if val == Lift(l.IsPositive()) {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// modelFromAssignment fills s.model from a DP/Resolution-style assignment
// array.
func (s *Solver) modelFromAssignment(assignment []LBool) {
	model := make([]bool, len(assignment))
	for v, val := range assignment {
		model[v] = val == True
	}
	s.model = model
}
