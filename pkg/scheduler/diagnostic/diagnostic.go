// Package diagnostic produces human-readable hints when the solver
// returns INFEASIBLE or times out without a solution, spec.md §4.7. Each
// check targets one commonly-recurring roster defect; none of them is
// exhaustive, so a generic fallback hint always runs last.
package diagnostic

import (
	"fmt"

	"github.com/notdienst/scheduler/pkg/model"
)

// minNightCapableNonAzubi is the floor below which no night can be
// staffed: every night needs at least one non-Azubi.
const minNightCapableNonAzubi = 1

// nightRequiredExceptionCeiling is the exception-day count at or above which a
// staff member required to work nights is almost certainly unsatisfiable.
const nightRequiredExceptionCeiling = 5

// Diagnose inspects the roster and catalogue for the handful of structural
// defects spec.md §4.7 calls out explicitly, then appends a generic
// fallback hint. It never aborts and always returns at least one hint.
func Diagnose(staff []*model.Staff, shifts []model.Shift) []string {
	var hints []string

	if h := checkSaturdayCapacity(staff, shifts); h != "" {
		hints = append(hints, h)
	}
	if h := checkNoAdultAzubi(staff); h != "" {
		hints = append(hints, h)
	}
	if h := checkNightCapableNonAzubi(staff); h != "" {
		hints = append(hints, h)
	}
	hints = append(hints, checkExceptionsVsMinConsecutive(staff)...)
	hints = append(hints, checkExceptionsVsNightRequired(staff)...)

	hints = append(hints, "no specific structural defect matched; inspect the roster's role mix, "+
		"per-staff exception days and max/min-consecutive bounds, and the vacation calendar for the quarter")

	return hints
}

// checkSaturdayCapacity reports when too few Azubis exist to cover the
// Saturday 10-19 slot, which only Azubis may work.
func checkSaturdayCapacity(staff []*model.Staff, shifts []model.Shift) string {
	azubis := 0
	for _, s := range staff {
		if s.Role == model.RoleAzubi {
			azubis++
		}
	}
	saturdayShifts := 0
	for _, sh := range shifts {
		if sh.ShiftType == model.SaturdayMorning {
			saturdayShifts++
		}
	}
	if azubis*13 < saturdayShifts {
		return fmt.Sprintf("only %d Azubi(s) available but %d Saturday 10-19 shifts require coverage "+
			"(capacity check: azubis*13 < shifts)", azubis, saturdayShifts)
	}
	return ""
}

// checkNoAdultAzubi reports when no Azubi is an adult, which makes the
// Minor Sunday Ban structurally unsatisfiable for that group on Sundays.
func checkNoAdultAzubi(staff []*model.Staff) string {
	for _, s := range staff {
		if s.Role == model.RoleAzubi && s.Adult {
			return ""
		}
	}
	for _, s := range staff {
		if s.Role == model.RoleAzubi {
			return "no adult Azubi in the roster: Sunday coverage requiring an Azubi cannot be staffed"
		}
	}
	return ""
}

// checkNightCapableNonAzubi reports when fewer than
// minNightCapableNonAzubi non-Azubi staff can work nights.
func checkNightCapableNonAzubi(staff []*model.Staff) string {
	count := 0
	for _, s := range staff {
		if s.Role != model.RoleAzubi && s.NightPossible {
			count++
		}
	}
	if count < minNightCapableNonAzubi {
		return fmt.Sprintf("only %d night-capable non-Azubi staff member(s); regular nights need at "+
			"least one", count)
	}
	return ""
}

// checkExceptionsVsMinConsecutive flags staff whose night exception days
// leave fewer eligible weekdays than their min-consecutive-nights run
// length requires.
func checkExceptionsVsMinConsecutive(staff []*model.Staff) []string {
	var hints []string
	for _, s := range staff {
		if !s.NightPossible {
			continue
		}
		minConsecutive := s.NightMinConsecutive
		if minConsecutive <= 0 {
			minConsecutive = model.DefaultNightMinConsecutive(s.Role)
		}
		eligible := s.EligibleNightWeekdays()
		if eligible < minConsecutive {
			hints = append(hints, fmt.Sprintf(
				"staff %s: only %d eligible weekday(s) after exceptions, but needs %d consecutive nights per block",
				s.ID, eligible, minConsecutive))
		}
	}
	return hints
}

// checkExceptionsVsNightRequired flags a night_possible staff member, of
// any role, whose exception list is so broad it likely forecloses any
// feasible block.
func checkExceptionsVsNightRequired(staff []*model.Staff) []string {
	var hints []string
	for _, s := range staff {
		if !s.NightPossible {
			continue
		}
		if len(s.NightExceptionWeekdays) >= nightRequiredExceptionCeiling {
			hints = append(hints, fmt.Sprintf(
				"staff %s: %d night exception weekday(s) leaves very little room to satisfy the "+
					"participation floor", s.ID, len(s.NightExceptionWeekdays)))
		}
	}
	return hints
}
