// Package validator independently re-checks a finished schedule against
// every hard rule in spec.md §4.4.2/§8, without relying on the MIP model
// that produced it, and scores a soft penalty, spec.md §4.6. It never
// aborts: an unknown staff reference is reported as a violation, not a
// panic (spec.md §7).
package validator

import (
	"fmt"
	"math"
	"sort"

	"github.com/notdienst/scheduler/pkg/model"
)

// Violation is one independently-detected hard-rule failure.
type Violation struct {
	Rule    string `json:"rule"`
	Details string `json:"details"`
}

// Result is the outcome of validating one schedule.
type Result struct {
	HardViolations []Violation `json:"hard_violations"`
	SoftPenalty    float64     `json:"soft_penalty"`
}

// blockGapDays is the minimum gap, in days, between the start of two
// on-call blocks for the same staff member (spec.md §9 Open Question 1).
const blockGapDays = 21

// Validate runs every named hard check and the soft-penalty scorer over
// schedule. It is pure: the same inputs always produce the same Result
// (spec.md §8 invariant 16).
func Validate(schedule *model.Schedule, staff []*model.Staff, shifts []model.Shift, vacations []model.Vacation, prev *model.PreviousPlanContext) *Result {
	byID := make(map[string]*model.Staff, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	var v []Violation
	v = append(v, checkUnknownStaff(schedule, byID)...)
	v = append(v, checkMinorSundayBan(schedule, byID)...)
	v = append(v, checkInternWeekendBan(schedule, byID)...)
	v = append(v, checkSameDayDoubleBooking(schedule)...)
	v = append(v, checkShiftEligibility(schedule, byID, vacations)...)
	v = append(v, checkShiftCoverage(schedule, shifts, byID)...)
	v = append(v, checkNightPairingRequired(schedule, shifts, byID)...)
	v = append(v, checkVetNightOverCapacity(schedule, shifts)...)
	v = append(v, checkAzubiNightPairing(schedule, shifts, byID)...)
	v = append(v, checkMultipleAzubisOnNight(schedule, shifts, byID)...)
	v = append(v, checkInternNightNoNonAzubi(schedule, shifts, byID)...)
	v = append(v, checkNDAloneImproperPairing(schedule, shifts, byID)...)
	v = append(v, checkInternNightCap(schedule, byID)...)
	v = append(v, checkWeekendIsolation(schedule, byID)...)
	v = append(v, checkNightDayConflict(schedule, byID)...)
	v = append(v, checkBlockSpacing(schedule, byID, prev)...)
	v = append(v, checkNightMaxConsecutive(schedule, byID, prev)...)
	v = append(v, checkMinConsecutiveNights(schedule, byID, prev)...)
	v = append(v, checkNDExceptionWeekday(schedule, byID)...)
	v = append(v, checkDepartmentSameNight(schedule, shifts, byID)...)
	v = append(v, checkDepartmentConsecutiveDays(schedule, byID)...)

	return &Result{
		HardViolations: v,
		SoftPenalty:    scoreSoftPenalty(schedule, staff),
	}
}

func checkUnknownStaff(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, a := range schedule.Assignments {
		if _, ok := byID[a.StaffID]; !ok {
			v = append(v, Violation{"Unknown Staff", fmt.Sprintf("assignment on %s references unknown staff %q", a.Date, a.StaffID)})
		}
	}
	return v
}

func checkMinorSundayBan(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, a := range schedule.Assignments {
		s, ok := byID[a.StaffID]
		if !ok {
			continue
		}
		if a.ShiftType.Category() == model.CategorySunday && !s.Adult {
			v = append(v, Violation{"Minor Sunday Ban", fmt.Sprintf("minor %s assigned Sunday shift on %s", s.ID, a.Date)})
		}
	}
	return v
}

func checkInternWeekendBan(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, a := range schedule.Assignments {
		s, ok := byID[a.StaffID]
		if !ok {
			continue
		}
		if s.Role == model.RoleIntern && a.ShiftType.IsWeekendShift() {
			v = append(v, Violation{"Intern Weekend Ban", fmt.Sprintf("intern %s assigned weekend shift on %s", s.ID, a.Date)})
		}
	}
	return v
}

func checkSameDayDoubleBooking(schedule *model.Schedule) []Violation {
	var v []Violation
	seen := make(map[string]int)
	for _, a := range schedule.Assignments {
		key := a.StaffID + "|" + a.Date
		seen[key]++
	}
	var keys []string
	for k, n := range seen {
		if n > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		v = append(v, Violation{"Same Day Double Booking", fmt.Sprintf("%s has %d assignments on the same day", k, seen[k])})
	}
	return v
}

func checkShiftEligibility(schedule *model.Schedule, byID map[string]*model.Staff, vacations []model.Vacation) []Violation {
	var v []Violation
	for _, a := range schedule.Assignments {
		s, ok := byID[a.StaffID]
		if !ok {
			continue
		}
		if !model.CanWork(s, a.ShiftType, a.Date) {
			v = append(v, Violation{"Shift Eligibility", fmt.Sprintf("%s is not eligible for %s on %s", s.ID, a.ShiftType, a.Date)})
		}
		if model.IsOnVacation(vacations, s.ID, a.Date) {
			v = append(v, Violation{"Shift Eligibility", fmt.Sprintf("%s is on vacation on %s", s.ID, a.Date)})
		}
		if s.IsBirthday(a.Date) {
			v = append(v, Violation{"Shift Eligibility", fmt.Sprintf("%s is assigned on their birthday %s", s.ID, a.Date)})
		}
	}
	return v
}

func checkShiftCoverage(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsWeekendShift() {
			continue
		}
		n := len(schedule.AssignmentsOnNight(sh.Date, sh.ShiftType))
		if n != 1 {
			v = append(v, Violation{"Shift Coverage", fmt.Sprintf("%s %s has %d assignees, want exactly 1", sh.Date, sh.ShiftType, n)})
		}
	}
	for _, sh := range shifts {
		if !sh.IsNightShift() || sh.IsVetPresentNight() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		nonAzubi := 0
		for _, a := range assignees {
			if s, ok := byID[a.StaffID]; ok && s.Role != model.RoleAzubi {
				nonAzubi++
			}
		}
		if len(assignees) < 1 || len(assignees) > 2 {
			v = append(v, Violation{"Shift Coverage", fmt.Sprintf("night %s %s has %d assignees, want 1 or 2", sh.Date, sh.ShiftType, len(assignees))})
		}
		if nonAzubi < 1 {
			v = append(v, Violation{"Shift Coverage", fmt.Sprintf("night %s %s has no non-Azubi staff present", sh.Date, sh.ShiftType)})
		}
	}
	return v
}

func checkNightPairingRequired(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || !sh.IsVetPresentNight() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		nonAzubi := 0
		azubi := 0
		for _, a := range assignees {
			if s, ok := byID[a.StaffID]; ok && s.Role == model.RoleAzubi {
				azubi++
			} else {
				nonAzubi++
			}
		}
		if nonAzubi != 1 {
			v = append(v, Violation{"Night Pairing Required", fmt.Sprintf("vet-present night %s %s has %d non-Azubi, want exactly 1", sh.Date, sh.ShiftType, nonAzubi)})
		}
		if azubi > 1 {
			v = append(v, Violation{"Night Pairing Required", fmt.Sprintf("vet-present night %s %s has %d Azubis, want at most 1", sh.Date, sh.ShiftType, azubi)})
		}
	}
	return v
}

func checkVetNightOverCapacity(schedule *model.Schedule, shifts []model.Shift) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || !sh.IsVetPresentNight() {
			continue
		}
		n := len(schedule.AssignmentsOnNight(sh.Date, sh.ShiftType))
		if n > 2 {
			v = append(v, Violation{"Vet Night Over Capacity", fmt.Sprintf("vet-present night %s %s has %d assignees, capacity is 2", sh.Date, sh.ShiftType, n)})
		}
	}
	return v
}

func checkAzubiNightPairing(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || sh.IsVetPresentNight() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		hasAzubi := false
		hasNonAzubi := false
		for _, a := range assignees {
			s, ok := byID[a.StaffID]
			if !ok {
				continue
			}
			if s.Role == model.RoleAzubi {
				hasAzubi = true
			} else {
				hasNonAzubi = true
			}
		}
		if hasAzubi && !hasNonAzubi {
			v = append(v, Violation{"Azubi Night Pairing", fmt.Sprintf("night %s %s has an Azubi with no non-Azubi present", sh.Date, sh.ShiftType)})
		}
	}
	return v
}

func checkMultipleAzubisOnNight(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || sh.IsVetPresentNight() {
			continue
		}
		count := 0
		for _, a := range schedule.AssignmentsOnNight(sh.Date, sh.ShiftType) {
			if s, ok := byID[a.StaffID]; ok && s.Role == model.RoleAzubi {
				count++
			}
		}
		if count > 1 {
			v = append(v, Violation{"Multiple Azubis on Night", fmt.Sprintf("night %s %s has %d Azubis, want at most 1", sh.Date, sh.ShiftType, count)})
		}
	}
	return v
}

// checkInternNightNoNonAzubi flags a regular night staffed by an Intern
// with no TFA present — Interns work nights under supervision, not as
// the senior presence.
func checkInternNightNoNonAzubi(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || sh.IsVetPresentNight() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		hasIntern := false
		hasTFA := false
		for _, a := range assignees {
			s, ok := byID[a.StaffID]
			if !ok {
				continue
			}
			switch s.Role {
			case model.RoleIntern:
				hasIntern = true
			case model.RoleTFA:
				hasTFA = true
			}
		}
		if hasIntern && !hasTFA {
			v = append(v, Violation{"Intern Night No Non-Azubi", fmt.Sprintf("night %s %s has an Intern with no TFA present", sh.Date, sh.ShiftType)})
		}
	}
	return v
}

func checkNDAloneImproperPairing(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() || sh.IsVetPresentNight() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		for _, a := range assignees {
			s, ok := byID[a.StaffID]
			if !ok || s.Role == model.RoleAzubi {
				continue
			}
			paired := len(assignees) >= 2
			if !s.NightAlone && !paired {
				v = append(v, Violation{"ND Alone Improper Pairing", fmt.Sprintf("%s requires pairing but works night %s %s alone", s.ID, sh.Date, sh.ShiftType)})
			}
			if s.NightAlone && paired {
				v = append(v, Violation{"ND Alone Improper Pairing", fmt.Sprintf("%s works alone but shares night %s %s", s.ID, sh.Date, sh.ShiftType)})
			}
		}
	}
	return v
}

func checkInternNightCap(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	counts := make(map[string]int)
	for _, a := range schedule.Assignments {
		if !a.ShiftType.IsNightShift() {
			continue
		}
		s, ok := byID[a.StaffID]
		if !ok || s.Role != model.RoleIntern {
			continue
		}
		counts[s.ID]++
	}
	var ids []string
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := counts[id]
		if n < 6 || n > 9 {
			v = append(v, Violation{"Intern Night Cap", fmt.Sprintf("intern %s has %d quarterly nights, want 6-9", id, n)})
		}
	}
	return v
}

func checkWeekendIsolation(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	byStaff := groupByStaffDate(schedule, byID)
	for _, staffID := range sortedKeys(byStaff) {
		dates := byStaff[staffID]
		for _, date := range sortedKeys(dates) {
			shifts := dates[date]
			hasWeekend := false
			for _, t := range shifts {
				if t.IsWeekendShift() {
					hasWeekend = true
				}
			}
			if !hasWeekend {
				continue
			}
			for _, neighbor := range []string{model.AddDays(date, -1), model.AddDays(date, 1)} {
				if _, ok := dates[neighbor]; ok {
					v = append(v, Violation{"Weekend Isolation", fmt.Sprintf("%s works a weekend shift on %s and also works on adjacent %s", staffID, date, neighbor)})
				}
			}
		}
	}
	return v
}

func checkNightDayConflict(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	byStaff := groupByStaffDate(schedule, byID)
	for _, staffID := range sortedKeys(byStaff) {
		dates := byStaff[staffID]
		for _, date := range sortedKeys(dates) {
			shifts := dates[date]
			hasNight := false
			for _, t := range shifts {
				if t.IsNightShift() {
					hasNight = true
				}
			}
			if !hasNight {
				continue
			}
			for _, conflictDate := range []string{date, model.AddDays(date, 1)} {
				for _, t := range dates[conflictDate] {
					if t.IsWeekendShift() {
						v = append(v, Violation{"Night/Day Conflict", fmt.Sprintf("%s works night starting %s and weekend shift on %s", staffID, date, conflictDate)})
					}
				}
			}
		}
	}
	return v
}

func checkBlockSpacing(schedule *model.Schedule, byID map[string]*model.Staff, prev *model.PreviousPlanContext) []Violation {
	var v []Violation
	worksOn := workDaysByStaff(schedule)
	for _, staffID := range sortedKeys(worksOn) {
		dates := worksOn[staffID]
		sorted := sortedKeys(dates)

		var blockStarts []string
		for _, d := range sorted {
			if !dates[model.AddDays(d, -1)] {
				blockStarts = append(blockStarts, d)
			}
		}

		trailing := prev.TrailingWorkDaysFor(staffID)
		var lastHistorical string
		for d := range trailing {
			if !trailing[model.AddDays(d, -1)] && d > lastHistorical {
				lastHistorical = d
			}
		}

		for i, b1 := range blockStarts {
			if lastHistorical != "" && daysBetween(lastHistorical, b1) < blockGapDays {
				v = append(v, Violation{"3-Week Block Limit", fmt.Sprintf("%s starts a block on %s within %d days of a historical block start %s", staffID, b1, blockGapDays, lastHistorical)})
			}
			for _, b2 := range blockStarts[i+1:] {
				if daysBetween(b1, b2) < blockGapDays {
					v = append(v, Violation{"3-Week Block Limit", fmt.Sprintf("%s starts blocks on %s and %s less than %d days apart", staffID, b1, b2, blockGapDays)})
				}
			}
		}
	}
	return v
}

func checkNightMaxConsecutive(schedule *model.Schedule, byID map[string]*model.Staff, prev *model.PreviousPlanContext) []Violation {
	var v []Violation
	for _, id := range sortedKeys(byID) {
		s := byID[id]
		if s.NightMaxConsecutive == nil {
			continue
		}
		cal := nightCalendarFor(schedule, prev, s.ID)
		run := 0
		var dates []string
		for d := range cal {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			if cal[d] {
				run++
				if run > *s.NightMaxConsecutive {
					v = append(v, Violation{"Night Max Consecutive", fmt.Sprintf("%s exceeds max %d consecutive nights ending %s", s.ID, *s.NightMaxConsecutive, d)})
				}
			} else {
				run = 0
			}
		}
	}
	return v
}

func checkMinConsecutiveNights(schedule *model.Schedule, byID map[string]*model.Staff, prev *model.PreviousPlanContext) []Violation {
	var v []Violation
	for _, id := range sortedKeys(byID) {
		s := byID[id]
		if !s.NightPossible {
			continue
		}
		minConsecutive := s.NightMinConsecutive
		if minConsecutive <= 0 {
			minConsecutive = model.DefaultNightMinConsecutive(s.Role)
		}
		if minConsecutive <= 1 {
			continue
		}
		cal := nightCalendarFor(schedule, prev, s.ID)
		var dates []string
		for d := range cal {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		runStart := -1
		for i, d := range dates {
			if cal[d] {
				if runStart == -1 {
					runStart = i
				}
			} else {
				if runStart != -1 {
					reportShortRun(&v, s.ID, dates, runStart, i, minConsecutive)
				}
				runStart = -1
			}
		}
		if runStart != -1 {
			reportShortRun(&v, s.ID, dates, runStart, len(dates), minConsecutive)
		}
	}
	return v
}

func reportShortRun(v *[]Violation, staffID string, dates []string, start, end, minConsecutive int) {
	length := end - start
	if length < minConsecutive && start > 0 {
		*v = append(*v, Violation{"Min Consecutive Nights", fmt.Sprintf("%s has a %d-night run starting %s, want at least %d", staffID, length, dates[start], minConsecutive)})
	}
}

func checkNDExceptionWeekday(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, a := range schedule.Assignments {
		if !a.ShiftType.IsNightShift() {
			continue
		}
		s, ok := byID[a.StaffID]
		if !ok {
			continue
		}
		if s.HasNightExceptionOn(model.Weekday(a.Date)) {
			v = append(v, Violation{"ND Exception Weekday", fmt.Sprintf("%s assigned night %s on an excepted weekday", s.ID, a.Date)})
		}
	}
	return v
}

func checkDepartmentSameNight(schedule *model.Schedule, shifts []model.Shift, byID map[string]*model.Staff) []Violation {
	var v []Violation
	for _, sh := range shifts {
		if !sh.IsNightShift() {
			continue
		}
		assignees := schedule.AssignmentsOnNight(sh.Date, sh.ShiftType)
		for i, a1 := range assignees {
			s1, ok1 := byID[a1.StaffID]
			if !ok1 || s1.Department == model.DepartmentOther {
				continue
			}
			for _, a2 := range assignees[i+1:] {
				s2, ok2 := byID[a2.StaffID]
				if !ok2 || s2.Department == model.DepartmentOther {
					continue
				}
				if s1.Department == s2.Department {
					v = append(v, Violation{"Department Same Night", fmt.Sprintf("%s and %s share department %s on night %s %s", s1.ID, s2.ID, s1.Department, sh.Date, sh.ShiftType)})
				}
			}
		}
	}
	return v
}

func checkDepartmentConsecutiveDays(schedule *model.Schedule, byID map[string]*model.Staff) []Violation {
	var v []Violation
	nightsByStaff := make(map[string]map[string]bool)
	for _, a := range schedule.Assignments {
		if !a.ShiftType.IsNightShift() {
			continue
		}
		if nightsByStaff[a.StaffID] == nil {
			nightsByStaff[a.StaffID] = make(map[string]bool)
		}
		nightsByStaff[a.StaffID][a.Date] = true
	}
	var ids []string
	for id := range byID {
		if byID[id].Department != model.DepartmentOther {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for i, id1 := range ids {
		s1 := byID[id1]
		for _, id2 := range ids[i+1:] {
			s2 := byID[id2]
			if s1.Department != s2.Department {
				continue
			}
			for _, d := range sortedKeys(nightsByStaff[id1]) {
				next := model.AddDays(d, 1)
				if nightsByStaff[id2][next] {
					v = append(v, Violation{"Department Consecutive Days", fmt.Sprintf("%s (night %s) and %s (night %s) are same-department consecutive nights", id1, d, id2, next)})
				}
			}
		}
	}
	return v
}

// sortedKeys returns a map's keys in ascending order, so every check that
// ranges over a map produces the same violation order on every run
// (spec.md §8 invariant 16: validator is deterministic).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// groupByStaffDate indexes every assignment's shift type by staff then
// date, for the neighbor-lookups the spacing checks need.
func groupByStaffDate(schedule *model.Schedule, byID map[string]*model.Staff) map[string]map[string][]model.ShiftType {
	out := make(map[string]map[string][]model.ShiftType)
	for _, a := range schedule.Assignments {
		if _, ok := byID[a.StaffID]; !ok {
			continue
		}
		if out[a.StaffID] == nil {
			out[a.StaffID] = make(map[string][]model.ShiftType)
		}
		out[a.StaffID][a.Date] = append(out[a.StaffID][a.Date], a.ShiftType)
	}
	return out
}

func workDaysByStaff(schedule *model.Schedule) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, a := range schedule.Assignments {
		if out[a.StaffID] == nil {
			out[a.StaffID] = make(map[string]bool)
		}
		out[a.StaffID][a.Date] = true
	}
	return out
}

// nightCalendarLookbackDays mirrors the builder's own nightCalendar window
// (pkg/scheduler/builder/night_consecutive.go), so the hard checks see the
// same history the constraint model was built against.
const nightCalendarLookbackDays = 21

// nightCalendarFor returns a DENSE day-by-day night calendar for staffID,
// spanning nightCalendarLookbackDays before the quarter through its last
// day, with an explicit false for every day no night was worked. The
// consecutive-run checks walk this map's sorted keys treating adjacent
// entries as calendar-adjacent days, which only holds if every day in the
// span has an entry — a sparse map (only "true" days) would let a run
// counter see consecutive entries for nights that are actually weeks
// apart, and would never see a gap to reset on.
func nightCalendarFor(schedule *model.Schedule, prev *model.PreviousPlanContext, staffID string) map[string]bool {
	cal := make(map[string]bool)
	trailingNights := prev.TrailingNightsFor(staffID)
	start := model.AddDays(schedule.QuarterStart, -nightCalendarLookbackDays)
	for d := start; d < schedule.QuarterStart; d = model.AddDays(d, 1) {
		cal[d] = trailingNights[d]
	}
	for d := schedule.QuarterStart; d <= schedule.QuarterEnd; d = model.AddDays(d, 1) {
		cal[d] = false
	}
	for _, a := range schedule.Assignments {
		if a.StaffID == staffID && a.ShiftType.IsNightShift() {
			cal[a.Date] = true
		}
	}
	return cal
}

func daysBetween(a, b string) int {
	return model.DateRange{Start: a, End: b}.Days() - 1
}

// scoreSoftPenalty implements spec.md §4.6's soft-penalty formula:
// Σ(actual-target)² + Σ_group stddev·10 + 100·(#night_max_consecutive
// overshoots already counted as hard violations above, scored again here
// as a continuous penalty signal).
func scoreSoftPenalty(schedule *model.Schedule, staff []*model.Staff) float64 {
	totalHours := 0
	for _, s := range staff {
		totalHours += s.WeeklyHours
	}
	if totalHours <= 0 {
		return 0
	}
	totalAssignments := len(schedule.Assignments)

	actual := make(map[string]int)
	for _, a := range schedule.Assignments {
		actual[a.StaffID]++
	}

	var sumSquares float64
	groupValues := map[model.Role][]float64{}
	for _, s := range staff {
		target := (float64(s.WeeklyHours) / float64(totalHours)) * float64(totalAssignments)
		diff := float64(actual[s.ID]) - target
		sumSquares += diff * diff
		groupValues[s.Role] = append(groupValues[s.Role], float64(actual[s.ID]))
	}

	var groupStddevSum float64
	for _, values := range groupValues {
		groupStddevSum += stddev(values)
	}

	overshoots := 0
	for _, s := range staff {
		if s.NightMaxConsecutive == nil {
			continue
		}
		run := 0
		dates := sortedStaffNightDates(schedule, s.ID)
		var prevDate string
		for _, d := range dates {
			if prevDate != "" && model.AddDays(prevDate, 1) == d {
				run++
			} else {
				run = 1
			}
			if run > *s.NightMaxConsecutive {
				overshoots++
			}
			prevDate = d
		}
	}

	return sumSquares + groupStddevSum*10 + 100*float64(overshoots)
}

func sortedStaffNightDates(schedule *model.Schedule, staffID string) []string {
	var dates []string
	for _, a := range schedule.Assignments {
		if a.StaffID == staffID && a.ShiftType.IsNightShift() {
			dates = append(dates, a.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
