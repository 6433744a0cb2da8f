package solver

import "testing"

// Solve itself is not unit-tested here: mip.Solution only comes from a live
// HiGHS solve, so there is no SDK-provided double to unit-test
// extractAssignments against in isolation.

func TestDefaultBudget_Positive(t *testing.T) {
	if DefaultBudget <= 0 {
		t.Fatalf("DefaultBudget = %v, want > 0", DefaultBudget)
	}
}

func TestStatusValues_Distinct(t *testing.T) {
	seen := map[Status]bool{}
	for _, s := range []Status{StatusOptimal, StatusFeasible, StatusInfeasible, StatusUnknown} {
		if seen[s] {
			t.Fatalf("duplicate status value %q", s)
		}
		seen[s] = true
	}
}
