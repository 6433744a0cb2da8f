// Package builder turns a staff roster and a shift catalogue into a
// boolean MIP model, spec.md §4.4. Variable creation, hard constraints and
// the fairness objective are split one file per concern, mirroring the
// constraint-family layout the teacher used for its rule engine.
package builder

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// xKey identifies one x[s,d,t] decision variable.
type xKey struct {
	Staff string
	Date  string
	Type  model.ShiftType
}

// dsKey identifies a per-(staff,date) auxiliary variable: paired,
// works_on or block_start.
type dsKey struct {
	Staff string
	Date  string
}

// Index holds every decision and auxiliary variable created for a model,
// keyed for fast lookup while the constraint families are added.
type Index struct {
	Staff  []*model.Staff
	Shifts []model.Shift

	// X is the core assignment variable: x[s,d,t].
	X map[xKey]mip.Bool

	// Paired is paired[s,d], defined for every (s, night-date) where a
	// night x-variable exists for s on d.
	Paired map[dsKey]mip.Bool

	// WorksOn is works_on[s,d] = OR over t of x[s,d,t].
	WorksOn map[dsKey]mip.Bool

	// BlockStart is block_start[s,d] = works_on[s,d] ∧ ¬works_on[s,d-1].
	BlockStart map[dsKey]mip.Bool

	// PairedAndAssigned is paired_and_assigned[s,d] = x[s,d,t_night] ∧
	// paired[s,d], used only by the fairness objective.
	PairedAndAssigned map[dsKey]mip.Bool

	// byStaff indexes shifts usable by a given staff ID, sorted by
	// (date, shift_type) to satisfy the §5 deterministic ordering
	// requirement when variables and constraints are created.
	byStaff map[string][]model.Shift

	// shiftsByDate indexes the catalogue by date for neighbor lookups.
	shiftsByDate map[string][]model.Shift

	// presence is the fairness objective's per-person presence factor
	// P(s), populated by addFairnessObjective before any group range is
	// built.
	presence map[string]float64
}

func newIndex(staff []*model.Staff, shifts []model.Shift) *Index {
	idx := &Index{
		Staff:             staff,
		Shifts:            shifts,
		X:                 make(map[xKey]mip.Bool),
		Paired:            make(map[dsKey]mip.Bool),
		WorksOn:           make(map[dsKey]mip.Bool),
		BlockStart:        make(map[dsKey]mip.Bool),
		PairedAndAssigned: make(map[dsKey]mip.Bool),
		byStaff:           make(map[string][]model.Shift),
		shiftsByDate:      make(map[string][]model.Shift),
		presence:          make(map[string]float64),
	}
	for _, s := range shifts {
		idx.shiftsByDate[s.Date] = append(idx.shiftsByDate[s.Date], s)
	}
	return idx
}

// Var returns the x[s,d,t] variable and whether it exists.
func (idx *Index) Var(staffID, date string, t model.ShiftType) (mip.Bool, bool) {
	v, ok := idx.X[xKey{Staff: staffID, Date: date, Type: t}]
	return v, ok
}

// NightVarOn returns the single night variable of staffID on date, if any
// — every date has exactly one night shift type in the catalogue.
func (idx *Index) NightVarOn(staffID, date string) (mip.Bool, model.ShiftType, bool) {
	for _, s := range idx.shiftsByDate[date] {
		if !s.IsNightShift() {
			continue
		}
		if v, ok := idx.Var(staffID, date, s.ShiftType); ok {
			return v, s.ShiftType, true
		}
		return nil, s.ShiftType, false
	}
	return nil, "", false
}

// sortedStaffIDs returns staff IDs sorted ascending, per §5.
func sortedStaffIDs(staff []*model.Staff) []string {
	ids := make([]string, len(staff))
	for i, s := range staff {
		ids[i] = s.ID
	}
	sort.Strings(ids)
	return ids
}

// datesOf returns the sorted distinct dates covered by shifts.
func datesOf(shifts []model.Shift) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, s := range shifts {
		if !seen[s.Date] {
			seen[s.Date] = true
			dates = append(dates, s.Date)
		}
	}
	sort.Strings(dates)
	return dates
}
