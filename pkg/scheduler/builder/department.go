package builder

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addDepartmentSeparation wires C10: two night_possible staff in the same
// restricted department (OP or Station) may never share a night, nor
// bracket two consecutive nights. Department "Other" is exempt.
func addDepartmentSeparation(m mip.Model, idx *Index, byID map[string]*model.Staff) {
	byDept := make(map[model.Department][]string)
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		s := byID[staffID]
		if !s.NightPossible {
			continue
		}
		if s.Department != model.DepartmentOP && s.Department != model.DepartmentStation {
			continue
		}
		byDept[s.Department] = append(byDept[s.Department], staffID)
	}

	for _, ids := range byDept {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				addDepartmentPair(m, idx, ids[i], ids[j])
			}
		}
	}
}

func addDepartmentPair(m mip.Model, idx *Index, s1, s2 string) {
	for _, date := range datesOf(idx.Shifts) {
		v1, t1, ok1 := idx.NightVarOn(s1, date)
		v2, t2, ok2 := idx.NightVarOn(s2, date)
		if ok1 && ok2 && t1 == t2 {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			c.NewTerm(1.0, v1)
			c.NewTerm(1.0, v2)
		}

		next := model.AddDays(date, 1)
		nv2, _, nok2 := idx.NightVarOn(s2, next)
		if ok1 && nok2 {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			c.NewTerm(1.0, v1)
			c.NewTerm(1.0, nv2)
		}
		nv1, _, nok1 := idx.NightVarOn(s1, next)
		if ok2 && nok1 {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			c.NewTerm(1.0, v2)
			c.NewTerm(1.0, nv1)
		}
	}
}
