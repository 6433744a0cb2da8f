package builder

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addCoverage wires C0 (at most one shift per person per day), C1
// (weekend coverage), C2a/C2b (night coverage) and C2c (paired linkage).
func addCoverage(m mip.Model, idx *Index, byID map[string]*model.Staff) {
	addOnePerDay(m, idx)
	addWeekendCoverage(m, idx)
	addNightCoverage(m, idx, byID)
	addPairedLinkage(m, idx)
}

// C0: Σ over t of x[s,d,t] ≤ 1.
func addOnePerDay(m mip.Model, idx *Index) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		byDate := make(map[string][]mip.Bool)
		for _, sh := range idx.byStaff[staffID] {
			v, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			byDate[sh.Date] = append(byDate[sh.Date], v)
		}
		dates := make([]string, 0, len(byDate))
		for d := range byDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			vars := byDate[d]
			if len(vars) < 2 {
				continue
			}
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, v := range vars {
				c.NewTerm(1.0, v)
			}
		}
	}
}

// C1: Σ over s of x[s,d,t] = 1 for every weekend shift (d,t).
func addWeekendCoverage(m mip.Model, idx *Index) {
	for _, sh := range idx.Shifts {
		if !sh.IsWeekendShift() {
			continue
		}
		c := m.NewConstraint(mip.Equal, 1.0)
		for _, staffID := range sortedStaffIDs(idx.Staff) {
			if v, ok := idx.Var(staffID, sh.Date, sh.ShiftType); ok {
				c.NewTerm(1.0, v)
			}
		}
	}
}

// C2a/C2b: night coverage, split on whether the night is vet-present.
func addNightCoverage(m mip.Model, idx *Index, byID map[string]*model.Staff) {
	for _, date := range datesOf(idx.Shifts) {
		var nightType model.ShiftType
		found := false
		for _, sh := range idx.shiftsByDate[date] {
			if sh.IsNightShift() {
				nightType = sh.ShiftType
				found = true
				break
			}
		}
		if !found {
			continue
		}

		var all, nonAzubi, azubi []mip.Bool
		for _, staffID := range sortedStaffIDs(idx.Staff) {
			v, ok := idx.Var(staffID, date, nightType)
			if !ok {
				continue
			}
			all = append(all, v)
			if byID[staffID].Role == model.RoleAzubi {
				azubi = append(azubi, v)
			} else {
				nonAzubi = append(nonAzubi, v)
			}
		}
		if len(all) == 0 {
			continue
		}

		if nightType.IsVetPresentNight() {
			// C2b: exactly one non-Azubi, at most one Azubi.
			cNonAzubi := m.NewConstraint(mip.Equal, 1.0)
			for _, v := range nonAzubi {
				cNonAzubi.NewTerm(1.0, v)
			}
			if len(azubi) > 0 {
				cAzubi := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				for _, v := range azubi {
					cAzubi.NewTerm(1.0, v)
				}
			}
			continue
		}

		// C2a: total ∈ [1,2]; at least one non-Azubi.
		cMax := m.NewConstraint(mip.LessThanOrEqual, 2.0)
		cMin := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
		for _, v := range all {
			cMax.NewTerm(1.0, v)
			cMin.NewTerm(1.0, v)
		}
		if len(nonAzubi) > 0 {
			cNonAzubiMin := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			for _, v := range nonAzubi {
				cNonAzubiMin.NewTerm(1.0, v)
			}
		}
	}
}

// C2c: paired[s,d] = x[s,d,t_night] ∧ (Σ total x over s' on (d,t_night) = 2).
// Both regular and vet-present nights cap total headcount at 2 (C2a/C2b),
// so (total-1) is exactly the indicator of total==2 in either case — no
// separate headcount variable is needed, it is folded directly into the
// linear terms below. This mirrors model.EffectiveNightWeight, which also
// keys off raw headcount rather than the regular/vet-present distinction.
func addPairedLinkage(m mip.Model, idx *Index) {
	for _, date := range datesOf(idx.Shifts) {
		var nightType model.ShiftType
		found := false
		for _, sh := range idx.shiftsByDate[date] {
			if sh.IsNightShift() {
				nightType = sh.ShiftType
				found = true
				break
			}
		}
		if !found {
			continue
		}

		var nightVars []mip.Bool
		var nightStaff []string
		for _, staffID := range sortedStaffIDs(idx.Staff) {
			nv, ok := idx.Var(staffID, date, nightType)
			if !ok {
				continue
			}
			nightVars = append(nightVars, nv)
			nightStaff = append(nightStaff, staffID)
		}
		if len(nightVars) == 0 {
			continue
		}

		for i, staffID := range nightStaff {
			x := nightVars[i]
			paired, ok := idx.Paired[dsKey{Staff: staffID, Date: date}]
			if !ok {
				continue
			}

			// paired ≤ x
			cA := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			cA.NewTerm(1.0, paired)
			cA.NewTerm(-1.0, x)

			// paired ≤ total - 1  ⇔  paired - Σx' ≤ -1
			cB := m.NewConstraint(mip.LessThanOrEqual, -1.0)
			cB.NewTerm(1.0, paired)
			for _, v := range nightVars {
				cB.NewTerm(-1.0, v)
			}

			// paired ≥ x + total - 2  ⇔  paired - x - Σx' ≥ -2
			cC := m.NewConstraint(mip.GreaterThanOrEqual, -2.0)
			cC.NewTerm(1.0, paired)
			cC.NewTerm(-1.0, x)
			for _, v := range nightVars {
				cC.NewTerm(-1.0, v)
			}
		}
	}
}
