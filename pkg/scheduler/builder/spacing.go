package builder

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// addSpacingRules wires C5, C6a, C6b, C7, C8 and C9 — every constraint
// family concerned with how a single staff member's shifts are spread
// across the calendar.
func addSpacingRules(m mip.Model, idx *Index, byID map[string]*model.Staff, prev *model.PreviousPlanContext, quarterStart string) {
	addWeekendIsolation(m, idx)
	addNightDayConflict(m, idx)
	addCrossQuarterBoundary(m, idx, prev)
	addWorksOnAndBlockStart(m, idx, prev, quarterStart)
	addBlockSpacing(m, idx, prev, quarterStart)
	addNightMaxConsecutive(m, idx, byID, prev, quarterStart)
	addNightMinConsecutive(m, idx, byID, prev, quarterStart)
}

// C5: a weekend shift forbids any shift (weekend or night) on the
// adjacent calendar day for the same staff member.
func addWeekendIsolation(m mip.Model, idx *Index) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		for _, sh := range idx.byStaff[staffID] {
			if !sh.IsWeekendShift() {
				continue
			}
			x, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			for _, neighborDate := range []string{model.AddDays(sh.Date, -1), model.AddDays(sh.Date, 1)} {
				for _, nsh := range idx.shiftsByDate[neighborDate] {
					nv, ok := idx.Var(staffID, neighborDate, nsh.ShiftType)
					if !ok {
						continue
					}
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, x)
					c.NewTerm(1.0, nv)
				}
			}
		}
	}
}

// C6a: a night shift forbids a weekend shift the same day or the next.
func addNightDayConflict(m mip.Model, idx *Index) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		for _, sh := range idx.byStaff[staffID] {
			if !sh.IsNightShift() {
				continue
			}
			xn, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			for _, date := range []string{sh.Date, model.AddDays(sh.Date, 1)} {
				for _, wsh := range idx.shiftsByDate[date] {
					if !wsh.IsWeekendShift() {
						continue
					}
					wv, ok := idx.Var(staffID, date, wsh.ShiftType)
					if !ok {
						continue
					}
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, xn)
					c.NewTerm(1.0, wv)
				}
			}
		}
	}
}

// C6b: a night worked on the last day of the previous quarter blocks the
// first weekend shift of this quarter and, defensively, any night
// variable that happens to land on that same historical date.
func addCrossQuarterBoundary(m mip.Model, idx *Index, prev *model.PreviousPlanContext) {
	if prev == nil {
		return
	}
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		last, ok := prev.LastNightOf(staffID)
		if !ok {
			continue
		}
		next := model.AddDays(last, 1)
		for _, sh := range idx.shiftsByDate[next] {
			if !sh.IsWeekendShift() {
				continue
			}
			if v, ok := idx.Var(staffID, next, sh.ShiftType); ok {
				c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				c.NewTerm(1.0, v)
			}
		}
		for _, sh := range idx.shiftsByDate[last] {
			if !sh.IsNightShift() {
				continue
			}
			if v, ok := idx.Var(staffID, last, sh.ShiftType); ok {
				c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				c.NewTerm(1.0, v)
			}
		}
	}
}

// trailingWorkDate reports whether staffID had any assignment on date in
// the 21-day tail of the previous quarter tracked by prev.
func trailingWorkDate(prev *model.PreviousPlanContext, staffID, date string) bool {
	if prev == nil {
		return false
	}
	return prev.TrailingWorkDaysFor(staffID)[date]
}

// addWorksOnAndBlockStart builds works_on[s,d] = OR_t x[s,d,t] and
// block_start[s,d] = works_on[s,d] ∧ ¬works_on[s,d-1] for every staff and
// in-quarter date, per §4.4.4. The d-1 neighbor may fall in the trailing
// window, in which case it is a known constant rather than a variable.
func addWorksOnAndBlockStart(m mip.Model, idx *Index, prev *model.PreviousPlanContext, quarterStart string) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		byDate := make(map[string][]mip.Bool)
		for _, sh := range idx.byStaff[staffID] {
			v, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
			byDate[sh.Date] = append(byDate[sh.Date], v)
		}
		for _, date := range sortedKeys(byDate) {
			vars := byDate[date]
			key := dsKey{Staff: staffID, Date: date}
			var works mip.Bool
			if len(vars) == 1 {
				works = vars[0]
			} else {
				works = m.NewBool()
				cUpper := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				cUpper.NewTerm(1.0, works)
				for _, v := range vars {
					cUpper.NewTerm(-1.0, v)
					cLower := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
					cLower.NewTerm(1.0, works)
					cLower.NewTerm(-1.0, v)
				}
			}
			idx.WorksOn[key] = works
		}

		for _, date := range sortedKeys(byDate) {
			works := idx.WorksOn[dsKey{Staff: staffID, Date: date}]
			prevDate := model.AddDays(date, -1)

			if prevDate < quarterStart {
				if trailingWorkDate(prev, staffID, prevDate) {
					// works_on[d-1] is known true: block_start forced to 0.
					bs := m.NewBool()
					c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
					c.NewTerm(1.0, bs)
					idx.BlockStart[dsKey{Staff: staffID, Date: date}] = bs
				} else {
					// works_on[d-1] is known false: block_start == works_on[d].
					idx.BlockStart[dsKey{Staff: staffID, Date: date}] = works
				}
				continue
			}

			prevWorks, ok := idx.WorksOn[dsKey{Staff: staffID, Date: prevDate}]
			if !ok {
				idx.BlockStart[dsKey{Staff: staffID, Date: date}] = works
				continue
			}

			bs := m.NewBool()
			cA := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			cA.NewTerm(1.0, bs)
			cA.NewTerm(-1.0, works)

			cB := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			cB.NewTerm(1.0, bs)
			cB.NewTerm(1.0, prevWorks)

			cC := m.NewConstraint(mip.GreaterThanOrEqual, 0.0)
			cC.NewTerm(1.0, bs)
			cC.NewTerm(-1.0, works)
			cC.NewTerm(1.0, prevWorks)

			idx.BlockStart[dsKey{Staff: staffID, Date: date}] = bs
		}
	}
}

// addBlockSpacing wires C7: no two block-starts (current or historical)
// within 21 days of each other.
func addBlockSpacing(m mip.Model, idx *Index, prev *model.PreviousPlanContext, quarterStart string) {
	const minGapDays = 21

	for _, staffID := range sortedStaffIDs(idx.Staff) {
		dates := datesOf(idx.byStaff[staffID])

		historicalStart := latestHistoricalBlockStart(prev, staffID, quarterStart)
		if historicalStart != "" {
			for _, d := range dates {
				if daysBetween(historicalStart, d) < minGapDays {
					if bs, ok := idx.BlockStart[dsKey{Staff: staffID, Date: d}]; ok {
						c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
						c.NewTerm(1.0, bs)
					}
				}
			}
		}

		for i, d1 := range dates {
			bs1, ok := idx.BlockStart[dsKey{Staff: staffID, Date: d1}]
			if !ok {
				continue
			}
			for _, d2 := range dates[i+1:] {
				if daysBetween(d1, d2) >= minGapDays {
					break
				}
				bs2, ok := idx.BlockStart[dsKey{Staff: staffID, Date: d2}]
				if !ok {
					continue
				}
				c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
				c.NewTerm(1.0, bs1)
				c.NewTerm(1.0, bs2)
			}
		}
	}
}

// latestHistoricalBlockStart returns the most recent date, strictly
// before quarterStart, on which staffID began a new working block in the
// trailing window — i.e. it worked that day but not the day before.
func latestHistoricalBlockStart(prev *model.PreviousPlanContext, staffID, quarterStart string) string {
	if prev == nil {
		return ""
	}
	worked := prev.TrailingWorkDaysFor(staffID)
	latest := ""
	for date := range worked {
		if date >= quarterStart {
			continue
		}
		if worked[model.AddDays(date, -1)] {
			continue
		}
		if date > latest {
			latest = date
		}
	}
	return latest
}

func daysBetween(a, b string) int {
	return model.DateRange{Start: a, End: b}.Days() - 1
}

func sortedKeys(m map[string][]mip.Bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
