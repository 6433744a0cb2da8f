// Package scheduler is the top-level facade spec.md §6 describes as the
// process interface: it wires the shift catalogue, constraint builder,
// MIP solver and independent validator into one call.
package scheduler

import (
	"time"

	"github.com/notdienst/scheduler/pkg/model"
	"github.com/notdienst/scheduler/pkg/scheduler/carryforward"
	"github.com/notdienst/scheduler/pkg/scheduler/catalogue"
	"github.com/notdienst/scheduler/pkg/scheduler/solver"
	"github.com/notdienst/scheduler/pkg/scheduler/validator"
)

// Result is the process interface's SolverResult, spec.md §6.
type Result struct {
	Success                bool
	Schedule               *model.Schedule
	SoftPenalty            float64
	UnsatisfiableConstraints []string
}

// Schedule runs one full quarter: builds the shift catalogue, solves the
// constraint model, and independently validates the result. previous may
// be nil for a quarter with no carry-forward history. maxSolveTime <= 0
// selects solver.DefaultBudget.
func Schedule(staff []*model.Staff, quarterStart string, vacations []model.Vacation, previous *model.PreviousPlanContext, maxSolveTime time.Duration, seed int) (*Result, error) {
	quarterEnd := catalogue.QuarterEnd(quarterStart)
	shifts := catalogue.Generate(quarterStart)

	solved, err := solver.Solve(staff, shifts, vacations, previous, quarterStart, quarterEnd, maxSolveTime, seed)
	if err != nil {
		return nil, err
	}

	if solved.Status == solver.StatusInfeasible || solved.Status == solver.StatusUnknown {
		return &Result{
			Success:                  false,
			UnsatisfiableConstraints: solved.Hints,
		}, nil
	}

	result := validator.Validate(solved.Schedule, staff, shifts, vacations, previous)
	var hints []string
	for _, v := range result.HardViolations {
		hints = append(hints, v.Rule+": "+v.Details)
	}

	return &Result{
		Success:                  true,
		Schedule:                 solved.Schedule,
		SoftPenalty:              result.SoftPenalty,
		UnsatisfiableConstraints: hints,
	}, nil
}

// CarryForward computes the next quarter's PreviousPlanContext from a
// finished schedule, spec.md §4.3.
func CarryForward(schedule *model.Schedule, staff []*model.Staff, vacations []model.Vacation) *model.PreviousPlanContext {
	return carryforward.Compute(schedule, staff, vacations)
}
