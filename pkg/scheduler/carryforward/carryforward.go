// Package carryforward computes the previous-quarter summary fed back into
// the next quarter's constraint builder, spec.md §4.3.
package carryforward

import (
	"sort"

	"github.com/notdienst/scheduler/pkg/model"
)

// TrailingWindowDays is the length of the tail of the quarter carried into
// the next quarter's block-spacing/consecutive-night constraints.
const TrailingWindowDays = 21

// Compute derives a PreviousPlanContext from a completed schedule, per
// spec.md §4.3. vacations may be nil.
func Compute(schedule *model.Schedule, staff []*model.Staff, vacations []model.Vacation) *model.PreviousPlanContext {
	quarterDays := model.DateRange{Start: schedule.QuarterStart, End: schedule.QuarterEnd}.Days()

	entries := make([]model.CarryForwardEntry, 0, len(staff))

	for _, s := range staff {
		weekend, _ := countWeekendAndNights(schedule, s.ID)
		effectiveNights := effectiveNightSum(schedule, s.ID, s.Role)
		total := float64(weekend) + effectiveNights

		available := quarterDays - model.VacationDaysInRange(vacations, s.ID, model.DateRange{Start: schedule.QuarterStart, End: schedule.QuarterEnd})
		if available <= 0 {
			available = 1
		}
		hours := s.WeeklyHours
		if hours <= 0 {
			hours = 1
		}
		normalized := (total / float64(hours)) * 40 * (float64(quarterDays) / float64(available))

		entry := model.CarryForwardEntry{
			StaffID:         s.ID,
			Role:            s.Role,
			Hours:           s.WeeklyHours,
			EffectiveNights: effectiveNights,
			WeekendShifts:   weekend,
			TotalNotdienst:  total,
			Normalized40h:   normalized,
		}
		entries = append(entries, entry)
	}

	// Group by role to compute group means, then deltas.
	idxByRole := make(map[model.Role][]int)
	for i := range entries {
		idxByRole[entries[i].Role] = append(idxByRole[entries[i].Role], i)
	}
	for _, idxs := range idxByRole {
		mean := groupMean(entries, idxs)
		for _, i := range idxs {
			entries[i].GroupMean40h = mean
			entries[i].CarryForwardDelta = entries[i].Normalized40h - mean
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].StaffID < entries[j].StaffID })

	trailingStart := model.AddDays(schedule.QuarterEnd, -(TrailingWindowDays - 1))
	var trailing []model.TrailingAssignment
	for _, a := range schedule.Assignments {
		if a.Date >= trailingStart && a.Date <= schedule.QuarterEnd {
			trailing = append(trailing, model.TrailingAssignment{StaffID: a.StaffID, Date: a.Date, ShiftType: a.ShiftType})
		}
	}
	sort.Slice(trailing, func(i, j int) bool {
		if trailing[i].StaffID != trailing[j].StaffID {
			return trailing[i].StaffID < trailing[j].StaffID
		}
		return trailing[i].Date < trailing[j].Date
	})

	return &model.PreviousPlanContext{
		QuarterStart: schedule.QuarterStart,
		QuarterEnd:   schedule.QuarterEnd,
		Entries:      entries,
		Trailing:     trailing,
	}
}

func groupMean(entries []model.CarryForwardEntry, idxs []int) float64 {
	if len(idxs) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idxs {
		sum += entries[i].Normalized40h
	}
	return sum / float64(len(idxs))
}

func countWeekendAndNights(schedule *model.Schedule, staffID string) (weekend, nights int) {
	for _, a := range schedule.Assignments {
		if a.StaffID != staffID {
			continue
		}
		if a.ShiftType.IsWeekendShift() {
			weekend++
		} else if a.ShiftType.IsNightShift() {
			nights++
		}
	}
	return
}

func effectiveNightSum(schedule *model.Schedule, staffID string, role model.Role) float64 {
	sum := 0.0
	for _, a := range schedule.Assignments {
		if a.StaffID != staffID || !a.ShiftType.IsNightShift() {
			continue
		}
		headcount := len(schedule.AssignmentsOnNight(a.Date, a.ShiftType))
		sum += model.EffectiveNightWeight(role, headcount)
	}
	return sum
}

// GroupDeltaSum returns the sum of carry-forward deltas within a role
// group — used to validate the §3 "sums to ~0" invariant.
func GroupDeltaSum(entries []model.CarryForwardEntry, role model.Role) float64 {
	sum := 0.0
	for _, e := range entries {
		if e.Role == role {
			sum += e.CarryForwardDelta
		}
	}
	return sum
}
