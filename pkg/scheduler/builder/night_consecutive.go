package builder

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/notdienst/scheduler/pkg/model"
)

// nightCell is one night-calendar slot for a single staff member: either
// a live decision variable (in-quarter), a known historical fact (the
// trailing window), or unknown (out of range).
type nightCell struct {
	kind  string // "var", "const1", "const0", "none"
	value mip.Bool
}

// nightCalendar returns, for staffID, the night status of every date from
// 21 days before quarterStart through the end of the quarter.
func nightCalendar(idx *Index, prev *model.PreviousPlanContext, quarterStart string, staffID string) map[string]nightCell {
	cal := make(map[string]nightCell)
	trailing := map[string]bool{}
	if prev != nil {
		trailing = prev.TrailingNightsFor(staffID)
	}
	start := model.AddDays(quarterStart, -21)
	for d := start; d < quarterStart; d = model.AddDays(d, 1) {
		if trailing[d] {
			cal[d] = nightCell{kind: "const1"}
		} else {
			cal[d] = nightCell{kind: "const0"}
		}
	}
	for _, sh := range idx.byStaff[staffID] {
		if !sh.IsNightShift() {
			continue
		}
		v, _ := idx.Var(staffID, sh.Date, sh.ShiftType)
		cal[sh.Date] = nightCell{kind: "var", value: v}
	}
	return cal
}

func cellStatus(cal map[string]nightCell, date string) nightCell {
	if c, ok := cal[date]; ok {
		return c
	}
	return nightCell{kind: "none"}
}

// addNightMaxConsecutive wires C8: for staff with an explicit
// night_max_consecutive M, no window of M+1 consecutive calendar dates
// (trailing history included) may sum to more than M nights.
func addNightMaxConsecutive(m mip.Model, idx *Index, byID map[string]*model.Staff, prev *model.PreviousPlanContext, quarterStart string) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		s := byID[staffID]
		if s.NightMaxConsecutive == nil {
			continue
		}
		M := *s.NightMaxConsecutive
		cal := nightCalendar(idx, prev, quarterStart, staffID)

		dates := sortedCalendarDates(cal)
		if len(dates) == 0 {
			continue
		}
		lastDate := dates[len(dates)-1]
		for start := dates[0]; model.AddDays(start, M) <= lastDate; start = model.AddDays(start, 1) {
			fixedCount := 0
			var vars []mip.Bool
			skip := false
			for i := 0; i <= M; i++ {
				d := model.AddDays(start, i)
				switch cellStatus(cal, d).kind {
				case "const1":
					fixedCount++
				case "var":
					vars = append(vars, cellStatus(cal, d).value)
				case "const0", "none":
					// contributes nothing.
				default:
					skip = true
				}
			}
			if skip || len(vars) == 0 {
				continue
			}
			rhs := float64(M - fixedCount)
			if rhs < 0 {
				// Already violated by history; nothing the current
				// quarter's variables can do, so force them all to zero.
				rhs = 0
			}
			c := m.NewConstraint(mip.LessThanOrEqual, rhs)
			for _, v := range vars {
				c.NewTerm(1.0, v)
			}
		}
	}
}

// addNightMinConsecutive wires C9: for K=2 every assigned night needs an
// assigned neighbor; for K>=3 every assigned night needs to belong to at
// least one fully-assigned window of length K.
func addNightMinConsecutive(m mip.Model, idx *Index, byID map[string]*model.Staff, prev *model.PreviousPlanContext, quarterStart string) {
	for _, staffID := range sortedStaffIDs(idx.Staff) {
		s := byID[staffID]
		if !s.NightPossible {
			continue
		}
		K := s.NightMinConsecutive
		if K <= 0 {
			K = model.DefaultNightMinConsecutive(s.Role)
		}
		if K <= 1 {
			continue
		}
		cal := nightCalendar(idx, prev, quarterStart, staffID)

		for _, sh := range idx.byStaff[staffID] {
			if !sh.IsNightShift() {
				continue
			}
			x, _ := idx.Var(staffID, sh.Date, sh.ShiftType)

			if K == 2 {
				addMinConsecutiveK2(m, cal, sh.Date, x)
			} else {
				addMinConsecutiveKGeneral(m, cal, sh.Date, x, K)
			}
		}
	}
}

func addMinConsecutiveK2(m mip.Model, cal map[string]nightCell, date string, x mip.Bool) {
	left := cellStatus(cal, model.AddDays(date, -1))
	right := cellStatus(cal, model.AddDays(date, 1))

	if left.kind == "const1" || right.kind == "const1" {
		return
	}

	var neighbors []mip.Bool
	if left.kind == "var" {
		neighbors = append(neighbors, left.value)
	}
	if right.kind == "var" {
		neighbors = append(neighbors, right.value)
	}

	if len(neighbors) == 0 {
		c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		c.NewTerm(1.0, x)
		return
	}

	c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	c.NewTerm(1.0, x)
	for _, n := range neighbors {
		c.NewTerm(-1.0, n)
	}
}

func addMinConsecutiveKGeneral(m mip.Model, cal map[string]nightCell, date string, x mip.Bool, K int) {
	var windowGates []mip.Bool

	for offset := 0; offset < K; offset++ {
		start := model.AddDays(date, -(K - 1) + offset)
		var vars []mip.Bool
		valid := true
		for i := 0; i < K; i++ {
			d := model.AddDays(start, i)
			cell := cellStatus(cal, d)
			switch cell.kind {
			case "const1":
				// contributes nothing to the AND gate's variables.
			case "var":
				vars = append(vars, cell.value)
			default:
				valid = false
			}
			if !valid {
				break
			}
		}
		if !valid {
			continue
		}
		if len(vars) == 0 {
			// Window is entirely historical and already satisfied, so the
			// implication holds unconditionally — no constraint needed.
			return
		}

		gate := m.NewBool()
		for _, v := range vars {
			c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			c.NewTerm(1.0, gate)
			c.NewTerm(-1.0, v)
		}
		cLower := m.NewConstraint(mip.GreaterThanOrEqual, float64(-(len(vars) - 1)))
		cLower.NewTerm(1.0, gate)
		for _, v := range vars {
			cLower.NewTerm(-1.0, v)
		}
		windowGates = append(windowGates, gate)
	}

	c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	c.NewTerm(1.0, x)
	for _, g := range windowGates {
		c.NewTerm(-1.0, g)
	}
}

func sortedCalendarDates(cal map[string]nightCell) []string {
	dates := make([]string, 0, len(cal))
	for d := range cal {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
