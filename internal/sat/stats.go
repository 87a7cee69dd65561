package sat

// Stats holds the solver's search counters.
type Stats struct {
	Conflicts      int64
	Decisions      int64
	Propagations   int64
	Restarts       int64
	LearnedClauses int64
	ClausesDeleted int64

	// Implications counts non-decision trail entries (propagated, not
	// guessed, assignments): a natural companion to Decisions for
	// diagnosing branching behavior.
	Implications int64
}

// Stats returns a snapshot of the solver's search counters.
func (s *Solver) Stats() Stats {
	return s.stats
}
