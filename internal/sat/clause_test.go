package sat

import "testing"

func TestAddClauseDropsTautology(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()

	if err := s.AddClause(lits(1, -1, 2)); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got := s.NumConstraints(); got != 0 {
		t.Errorf("NumConstraints() = %d, want 0 (tautology should be dropped)", got)
	}
	if s.unsat {
		t.Error("a tautological clause must not mark the instance unsat")
	}
}

func TestAddClauseDedupesLiterals(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()

	if err := s.AddClause(lits(1, 2, 1)); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got := s.NumConstraints(); got != 1 {
		t.Fatalf("NumConstraints() = %d, want 1", got)
	}
	if got := s.constraints[0].Len(); got != 2 {
		t.Errorf("clause length = %d, want 2 after deduping the repeated literal", got)
	}
}

func TestAddClauseEmptyIsUnsat(t *testing.T) {
	s := NewDefaultSolver()
	if err := s.AddClause(nil); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	result, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if result != Unsatisfiable {
		t.Errorf("Solve() = %v, want Unsatisfiable for an empty clause", result)
	}
}

func TestAddClauseUnitCollapsesToEnqueue(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()

	if err := s.AddClause(lits(1)); err != nil {
		t.Fatalf("AddClause: %v", err)
	}
	if got := s.NumConstraints(); got != 0 {
		t.Errorf("NumConstraints() = %d, want 0 (a unit clause is enqueued, not stored)", got)
	}
	if got := s.VarValue(0); got != True {
		t.Errorf("VarValue(0) = %v, want True", got)
	}
}

func TestClauseIDsAreMonotonic(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 3; i++ {
		s.AddVariable()
	}
	if err := s.AddClause(lits(1, 2)); err != nil {
		t.Fatal(err)
	}
	if err := s.AddClause(lits(2, 3)); err != nil {
		t.Fatal(err)
	}
	if len(s.constraints) != 2 {
		t.Fatalf("expected 2 stored clauses, got %d", len(s.constraints))
	}
	if s.constraints[0].ID() >= s.constraints[1].ID() {
		t.Errorf("clause IDs not monotonic: %d then %d", s.constraints[0].ID(), s.constraints[1].ID())
	}
}
