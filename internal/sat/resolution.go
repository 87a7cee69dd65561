package sat

import "sort"

// solveResolution implements the saturating resolution procedure:
// repeatedly resolve every pair of clauses on every complementary
// literal they share, adding any resolvent not already present, until
// either the empty clause is derived (UNSAT) or a full round adds nothing
// new (the clause set is saturated and therefore satisfiable).
//
// Resolution is a refutation procedure: reaching saturation proves
// satisfiability but does not exhibit a witness, so unlike solveCDCL,
// solveDPLL, and solveDP this strategy leaves s.model nil on a
// Satisfiable verdict.
func (s *Solver) solveResolution() Result {
	if s.unsat {
		return Unsatisfiable
	}

	seen := map[clauseKey]bool{}
	var clauses [][]Literal

	add := func(lits []Literal) bool {
		sorted, key, ok := canonicalClause(lits)
		if !ok {
			return false // tautology, contributes nothing
		}
		if seen[key] {
			return false
		}
		seen[key] = true
		clauses = append(clauses, sorted)
		return true
	}

	for _, c := range s.extractClauses() {
		if len(c) == 0 {
			return Unsatisfiable
		}
		add(c)
	}

	for {
		n := len(clauses)
		addedAny := false

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ci, cj := clauses[i], clauses[j]
				for _, l := range ci {
					if !containsLiteral(cj, l.Opposite()) {
						continue
					}
					resolvent := make([]Literal, 0, len(ci)+len(cj)-2)
					for _, x := range ci {
						if x != l {
							resolvent = append(resolvent, x)
						}
					}
					for _, x := range cj {
						if x != l.Opposite() {
							resolvent = append(resolvent, x)
						}
					}
					sorted, key, ok := canonicalClause(resolvent)
					if !ok {
						continue
					}
					if len(sorted) == 0 {
						return Unsatisfiable
					}
					if seen[key] {
						continue
					}
					seen[key] = true
					clauses = append(clauses, sorted)
					addedAny = true
				}
			}
			if s.shouldStop() {
				return Unknown
			}
		}

		if !addedAny {
			return Satisfiable
		}
		s.stats.Decisions++ // one saturation round
	}
}

// containsLiteral reports whether the sorted clause c contains l.
func containsLiteral(c []Literal, l Literal) bool {
	i := sort.Search(len(c), func(i int) bool { return c[i] >= l })
	return i < len(c) && c[i] == l
}
