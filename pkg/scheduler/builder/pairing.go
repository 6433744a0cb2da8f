package builder

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addPairingRules wires C3a-C3d: the Azubi-per-night cap, the Azubi/
// non-Azubi partner requirement, and the nd_alone solo/paired split for
// non-Azubi staff on regular nights.
func addPairingRules(m mip.Model, idx *Index, byID map[string]*model.Staff) {
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

		var azubiVars, nonAzubiVars []mip.Bool
		var nonAzubiIDs []string
		for _, staffID := range sortedStaffIDs(idx.Staff) {
			v, ok := idx.Var(staffID, date, nightType)
			if !ok {
				continue
			}
			if byID[staffID].Role == model.RoleAzubi {
				azubiVars = append(azubiVars, v)
			} else {
				nonAzubiVars = append(nonAzubiVars, v)
				nonAzubiIDs = append(nonAzubiIDs, staffID)
			}
		}

		// C3a: at most one Azubi on any night.
		if len(azubiVars) >= 2 {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, v := range azubiVars {
				c.NewTerm(1.0, v)
			}
		}

		// C3b: an assigned Azubi requires a non-Azubi partner that night.
		for _, a := range azubiVars {
			c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			c.NewTerm(1.0, a)
			for _, v := range nonAzubiVars {
				c.NewTerm(-1.0, v)
			}
		}

		if nightType.IsVetPresentNight() {
			continue
		}

		// C3c/C3d apply only to regular nights.
		for i, staffID := range nonAzubiIDs {
			s := byID[staffID]
			x := nonAzubiVars[i]
			if s.NightAlone {
				// C3c: works alone — cannot share the night with anyone else.
				for j := range nonAzubiVars {
					if j == i {
						continue
					}
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, x)
					c.NewTerm(1.0, nonAzubiVars[j])
				}
				for _, a := range azubiVars {
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, x)
					c.NewTerm(1.0, a)
				}
			} else {
				// C3d: must be paired.
				paired, ok := idx.Paired[dsKey{Staff: staffID, Date: date}]
				if ok {
					c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
					c.NewTerm(1.0, x)
					c.NewTerm(-1.0, paired)
				}
			}
		}
	}
}
