package builder

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// Result bundles the built MIP model with the variable index the solver
// driver needs to read a solution back out.
type Result struct {
	Model mip.Model
	Index *Index
}

// Build constructs the full §4.4 constraint model — decision variables,
// hard constraints C0-C11, and the scaled fairness objective — over
// staff and the shift catalogue for one quarter.
//
// prev may be nil for a quarter with no carry-forward history.
func Build(staff []*model.Staff, shifts []model.Shift, vacations []model.Vacation, prev *model.PreviousPlanContext, quarterStart, quarterEnd string) *Result {
	m := mip.NewModel()
	m.Objective().SetMinimize()

	idx := newIndex(staff, shifts)
	byID := make(map[string]*model.Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	quarterDays := model.DateRange{Start: quarterStart, End: quarterEnd}.Days()

	addVariables(m, idx, vacations)
	addCoverage(m, idx, byID)
	addPairingRules(m, idx, byID)
	addParticipationRules(m, idx, byID)
	addSpacingRules(m, idx, byID, prev, quarterStart)
	addDepartmentSeparation(m, idx, byID)
	addFairnessObjective(m, idx, byID, vacations, prev, quarterStart, quarterEnd, quarterDays)

	return &Result{Model: m, Index: idx}
}
