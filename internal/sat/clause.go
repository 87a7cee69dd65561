package sat

import "strings"

// Clause is a disjunction of two or more literals. Original clauses are
// created at load time and never removed; learned clauses are created by
// conflict analysis and may later be deleted by the reduction policy,
// never while they are the reason for a trail entry (locked).
//
// Every clause carries a monotonically allocated ID (assigned by the
// Solver at construction) so that database bookkeeping (stats, debug
// logging, the invariant checks) can refer to a clause without relying on
// its address or its position in a slice that gets compacted during
// deletion — see the "clause identifiers vs pointers" design note.
type Clause struct {
	id int32

	// literals always has length >= 2 for a live clause. Positions 0 and 1
	// are the two watched literals.
	literals []Literal

	learnt bool

	// activity and lbd are only meaningful for learned clauses.
	activity float64
	lbd      int

	// protected clauses survive one reduceDB pass even if their activity
	// would otherwise mark them for deletion (set right after learning).
	protected bool
}

// ID returns the clause's stable identifier.
func (c *Clause) ID() int32 { return c.id }

// Learnt reports whether c was produced by conflict analysis.
func (c *Clause) Learnt() bool { return c.learnt }

// LBD returns the clause's literal-block distance, computed at learning
// time (0 for original clauses, which are never scored).
func (c *Clause) LBD() int { return c.lbd }

// Len returns the clause's current length (shrinks as simplify discards
// root-level-falsified literals).
func (c *Clause) Len() int { return len(c.literals) }

// Literals returns the clause's literals. The caller must not retain or
// mutate the returned slice: propagate rearranges literals in place.
func (c *Clause) Literals() []Literal { return c.literals }

// newClause builds a fresh Clause, allocating the next clause ID from s,
// and runs addClause's non-learnt preprocessing (tautology / duplicate /
// fixed-literal removal) when learnt is false. It returns (nil, true) when
// the clause simplifies away to "always satisfied", (nil, false) when it
// simplifies to the empty clause (UNSAT), and (nil, ok) when it collapses
// to a single literal, which is enqueued as a root-level fact instead of
// being materialized as a two-literal-minimum Clause.
func newClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology: l and !l both present
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true // already satisfied at the root
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := &Clause{
			id:     s.nextClauseID(),
			learnt: learnt,
		}
		c.literals = append(allocLiterals(len(tmpLiterals)), tmpLiterals...)

		if learnt {
			// Arrange the two watches so that position 0 is the FUIP
			// literal (already placed there by analyze) and position 1 is
			// the literal with the highest decision level among the rest:
			// this is exactly what makes the clause unit immediately after
			// backjumping to that level.
			maxLevel := -1
			swapAt := 1
			for i := 1; i < len(c.literals); i++ {
				if lvl := s.level[c.literals[i].VarID()]; lvl > maxLevel {
					maxLevel = lvl
					swapAt = i
				}
			}
			c.literals[swapAt], c.literals[1] = c.literals[1], c.literals[swapAt]
			c.lbd = computeLBD(s, c.literals)
		}

		s.watch(c, c.literals[0].Opposite(), c.literals[1])
		s.watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

// computeLBD counts the number of distinct decision levels among lits. It
// is only called when a clause is learned, which is rare enough relative
// to propagation that a plain map is not worth optimizing away.
func computeLBD(s *Solver, lits []Literal) int {
	levels := make(map[int]struct{}, len(lits))
	for _, l := range lits {
		levels[s.level[l.VarID()]] = struct{}{}
	}
	return len(levels)
}

// locked reports whether c is currently the reason for a trail entry and
// therefore must not be deleted.
func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// detach removes c from both of its watch lists. The caller is
// responsible for checking !c.locked(s) first; detach itself only
// enforces it as a last line of defense.
func (c *Clause) detach(s *Solver) {
	checkInvariant(!c.locked(s), "attempted to delete a clause that is a current reason")
	s.unwatch(c, c.literals[0].Opposite())
	s.unwatch(c, c.literals[1].Opposite())
	releaseLiterals(c.literals)
	c.literals = nil
}

// simplify drops root-level-falsified literals and reports whether c is
// now satisfied at the root (in which case the caller should detach it).
func (c *Clause) simplify(s *Solver) bool {
	k := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return true
		case False:
			// discard
		case LUnknown:
			c.literals[k] = l
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// propagate is invoked when l has just been assigned true, i.e. l's
// negation, one of c's two watched literals, has become false (c is in
// l's watch list). It ensures the
// triggering watch is at position 1, checks if the clause is already
// satisfied by its other watch, scans for a replacement watch among
// positions 2.., and otherwise enqueues or reports a conflict from the
// unit clause that remains. Returns true if c keeps
// watching one of {l, its replacement} (no conflict), false if c is now
// falsified.
func (c *Clause) propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.LitValue(c.literals[0]) == True {
		s.watch(c, l, c.literals[0])
		return true
	}

	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
			s.watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// No replacement: literals[0] must become true or the clause conflicts.
	s.watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// explainConflict appends to dst the negation of every literal of c, i.e.
// the set of literals that, together, falsify c. Used by conflict analysis
// when c itself is the conflicting clause.
func (c *Clause) explainConflict(s *Solver, dst []Literal) []Literal {
	for _, l := range c.literals {
		dst = append(dst, l.Opposite())
	}
	if c.learnt {
		s.bumpClauseActivity(c)
	}
	return dst
}

// explainAssign appends to dst the negation of every literal of c other
// than literals[0] (the implied literal): the reason c gave for assigning
// literals[0].
func (c *Clause) explainAssign(s *Solver, dst []Literal) []Literal {
	for _, l := range c.literals[1:] {
		dst = append(dst, l.Opposite())
	}
	if c.learnt {
		s.bumpClauseActivity(c)
	}
	return dst
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
