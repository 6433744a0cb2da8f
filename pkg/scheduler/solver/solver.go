// Package solver drives the MIP backend over a built constraint model,
// spec.md §4.5. It replaces the teacher's greedy heuristic with a
// HiGHS-backed exact solve, keeping the teacher's Solve/Result shape.
package solver

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/logger"
	"github.com/notdienst/scheduler/pkg/model"
	"github.com/notdienst/scheduler/pkg/scheduler/builder"
	"github.com/notdienst/scheduler/pkg/scheduler/diagnostic"
)

// Status classifies a solve outcome.
type Status string

const (
	StatusOptimal     Status = "OPTIMAL"
	StatusFeasible    Status = "FEASIBLE"
	StatusInfeasible  Status = "INFEASIBLE"
	StatusUnknown     Status = "UNKNOWN"
)

// DefaultBudget is the wall-clock solve budget used when the caller does
// not specify one, spec.md §4.5.
const DefaultBudget = 120 * time.Second

// assignedVarThreshold is the value above which a relaxed-looking boolean
// from the HiGHS solution counts as set, mirroring the nextmv example's own
// 0.9 cutoff for reading back 0/1 variables.
const assignedVarThreshold = 0.9

// Result is the outcome of one solve attempt.
type Result struct {
	Status      Status
	Duration    time.Duration
	Schedule    *model.Schedule
	SoftPenalty float64
	Hints       []string
}

// Solve builds and solves the model for one quarter and extracts a
// schedule, spec.md §4.5. budget <= 0 selects DefaultBudget. seed is
// accepted but not passed to the backend, so it does not change the
// result; the model itself, and HiGHS given a fixed model, are
// deterministic (spec.md §5).
func Solve(staff []*model.Staff, shifts []model.Shift, vacations []model.Vacation, prev *model.PreviousPlanContext, quarterStart, quarterEnd string, budget time.Duration, seed int) (*Result, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	log := logger.NewSchedulerLogger()
	log.StartRun(quarterStart, len(staff), len(shifts))

	built := builder.Build(staff, shifts, vacations, prev, quarterStart, quarterEnd)

	mipSolver, err := mip.NewSolver(mip.Highs, built.Model)
	if err != nil {
		return nil, fmt.Errorf("solver: construct HiGHS solver: %w", err)
	}

	opts := mip.NewSolveOptions().SetMaximumDuration(budget)

	start := time.Now()
	solution, err := mipSolver.Solve(opts)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("solver: solve: %w", err)
	}

	if !solution.IsOptimal() && !solution.IsSubOptimal() {
		status := StatusInfeasible
		if elapsed >= budget {
			status = StatusUnknown
		}
		hints := diagnostic.Diagnose(staff, shifts)
		log.SolveComplete(string(status), elapsed, 0)
		return &Result{Status: status, Duration: elapsed, Hints: hints}, nil
	}

	status := StatusFeasible
	if solution.IsOptimal() {
		status = StatusOptimal
	}

	assignments := extractAssignments(built, solution)
	schedule := &model.Schedule{QuarterStart: quarterStart, QuarterEnd: quarterEnd, Assignments: assignments}
	log.SolveComplete(string(status), elapsed, 0)

	return &Result{
		Status:   status,
		Duration: elapsed,
		Schedule: schedule,
	}, nil
}

// extractAssignments reads x[s,d,t] >= assignedVarThreshold out of the
// solution and recomputes each night assignment's paired flag directly
// from same-night headcount, never from the model's paired variable
// (spec.md §9 REDESIGN FLAG 3).
func extractAssignments(built *builder.Result, solution mip.Solution) []model.Assignment {
	idx := built.Index

	nightHeadcount := make(map[string]int)
	for _, sh := range idx.Shifts {
		if !sh.IsNightShift() {
			continue
		}
		for _, s := range idx.Staff {
			v, ok := idx.Var(s.ID, sh.Date, sh.ShiftType)
			if !ok {
				continue
			}
			if solution.Value(v) >= assignedVarThreshold {
				nightHeadcount[sh.Date]++
			}
		}
	}

	var out []model.Assignment
	for _, sh := range idx.Shifts {
		for _, s := range idx.Staff {
			v, ok := idx.Var(s.ID, sh.Date, sh.ShiftType)
			if !ok || solution.Value(v) < assignedVarThreshold {
				continue
			}
			paired := sh.IsNightShift() && nightHeadcount[sh.Date] >= 2
			out = append(out, model.Assignment{
				StaffID:   s.ID,
				Date:      sh.Date,
				ShiftType: sh.ShiftType,
				IsPaired:  paired,
			})
		}
	}
	return out
}
