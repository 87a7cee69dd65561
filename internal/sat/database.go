package sat

import "sort"

// simplify removes clauses satisfied at the root level from both the
// original and learned partitions, keeping any clause that is the reason
// for a root-level assignment (locked). Must only be called at decision
// level 0 with an empty propagation queue.
func (s *Solver) simplify() bool {
	checkInvariant(s.decisionLevel() == 0, "simplify called above the root level")
	checkInvariant(s.propQueue.IsEmpty(), "simplify called with a non-empty propagation queue")

	if s.unsat {
		return false
	}
	if conflict := s.propagate(); conflict != nil {
		s.unsat = true
		return false
	}

	s.learned = simplifyClauses(s, s.learned)
	s.constraints = simplifyClauses(s, s.constraints)
	return true
}

func simplifyClauses(s *Solver, clauses []*Clause) []*Clause {
	k := 0
	for _, c := range clauses {
		if !c.locked(s) && c.simplify(s) {
			c.detach(s)
		} else {
			clauses[k] = c
			k++
		}
	}
	return clauses[:k]
}

// reduceDB prunes the learned-clause database: sort by LBD ascending then
// activity descending, delete clauses from the lower-
// quality half, but never a clause that is currently locked (a reason) or
// a binary clause (length 2), and never a clause still marked protected
// from the round it was learned in.
func (s *Solver) reduceDB() {
	sort.Slice(s.learned, func(i, j int) bool {
		a, b := s.learned[i], s.learned[j]
		if a.lbd != b.lbd {
			return a.lbd < b.lbd
		}
		return a.activity > b.activity
	})

	k := 0
	half := len(s.learned) / 2
	for i, c := range s.learned {
		keep := i < half || c.locked(s) || c.Len() <= 2
		if c.protected {
			keep = true
			c.protected = false
		}
		if keep {
			s.learned[k] = c
			k++
		} else {
			c.detach(s)
			s.stats.ClausesDeleted++
		}
	}
	s.learned = s.learned[:k]
}
