package builder

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addParticipationRules wires C4 (Intern quarterly night band) and C11
// (minimum weekend/night participation).
func addParticipationRules(m mip.Model, idx *Index, byID map[string]*model.Staff) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		s := byID[staffID]

		var nightVars, weekendVars []mip.Bool
		for _, sh := range idx.byStaff[staffID] {
			v, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			if sh.IsNightShift() {
				nightVars = append(nightVars, v)
			} else if sh.IsWeekendShift() {
				weekendVars = append(weekendVars, v)
			}
		}

		if s.Role == model.RoleIntern && len(nightVars) > 0 {
			cMin := m.NewConstraint(mip.GreaterThanOrEqual, 6.0)
			cMax := m.NewConstraint(mip.LessThanOrEqual, 9.0)
			for _, v := range nightVars {
				cMin.NewTerm(1.0, v)
				cMax.NewTerm(1.0, v)
			}
		}

		if s.Role != model.RoleIntern && len(weekendVars) > 0 {
			c := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			for _, v := range weekendVars {
				c.NewTerm(1.0, v)
			}
		}

		if s.NightPossible && s.EligibleNightWeekdays() >= effectiveMinConsecutive(s) && len(nightVars) > 0 {
			c := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			for _, v := range nightVars {
				c.NewTerm(1.0, v)
			}
		}
	}
}

func effectiveMinConsecutive(s *model.Staff) int {
	if s.NightMinConsecutive > 0 {
		return s.NightMinConsecutive
	}
	return model.DefaultNightMinConsecutive(s.Role)
}
