package builder

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addVariables creates x[s,d,t] for every staff/shift cell that survives
// can_work plus the vacation/birthday exclusion (§4.4.1), and paired[s,d]
// for every (staff, night-date) where a night variable was created.
//
// Variables are created staff-by-staff (sorted by ID) and, within a
// staff, shift-by-shift (sorted by date then shift type) so that model
// construction is reproducible across runs, per spec.md §5.
func addVariables(m mip.Model, idx *Index, vacations []model.Vacation) {
	byID := make(map[string]*model.Staff, len(idx.Staff))
	for _, s := range idx.Staff {
		byID[s.ID] = s
	}

	for _, staffID := range sortedStaffIDs(idx.Staff) {
		s := byID[staffID]
		var usable []model.Shift
		for _, sh := range idx.Shifts {
			if !model.CanWork(s, sh.ShiftType, sh.Date) {
				continue
			}
			if model.IsOnVacation(vacations, s.ID, sh.Date) {
				continue
			}
			if s.IsBirthday(sh.Date) {
				continue
			}
			usable = append(usable, sh)
		}
		idx.byStaff[s.ID] = usable

		for _, sh := range usable {
			idx.X[xKey{Staff: s.ID, Date: sh.Date, Type: sh.ShiftType}] = m.NewBool()
		}
	}

	for _, staffID := range sortedStaffIDs(idx.Staff) {
		for _, sh := range idx.byStaff[staffID] {
			if !sh.IsNightShift() {
				continue
			}
			key := dsKey{Staff: staffID, Date: sh.Date}
			if _, ok := idx.Paired[key]; !ok {
				idx.Paired[key] = m.NewBool()
			}
		}
	}
}
