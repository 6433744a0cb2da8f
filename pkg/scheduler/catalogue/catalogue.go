// Package catalogue generates the deterministic 91-day shift catalogue for
// a quarter, spec.md §4.1.
package catalogue

import (
	"sort"

	"github.com/notdienst/scheduler/pkg/model"
)

// QuarterDays is the fixed horizon length: 13 weeks.
const QuarterDays = 91

// Generate returns the ordered set of Shifts for the 91-day horizon
// starting on quarterStart (inclusive), sorted by (date, shift_type) per
// spec.md §5 ordering requirement.
func Generate(quarterStart string) []model.Shift {
	shifts := make([]model.Shift, 0, QuarterDays*2)

	date := quarterStart
	for i := 0; i < QuarterDays; i++ {
		weekday := model.Weekday(date)

		shifts = append(shifts, model.Shift{Date: date, ShiftType: model.NightShiftForWeekday(weekday)})

		switch weekday {
		case 6: // Saturday
			shifts = append(shifts,
				model.Shift{Date: date, ShiftType: model.SaturdayMorning},
				model.Shift{Date: date, ShiftType: model.SaturdayEvening},
				model.Shift{Date: date, ShiftType: model.SaturdayLate},
			)
		case 7: // Sunday
			shifts = append(shifts,
				model.Shift{Date: date, ShiftType: model.SundayMorning},
				model.Shift{Date: date, ShiftType: model.SundayLate},
				model.Shift{Date: date, ShiftType: model.SundayExtra},
			)
		}

		date = model.AddDays(date, 1)
	}

	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].ShiftType < shifts[j].ShiftType
	})

	return shifts
}

// QuarterEnd returns the last included day of a quarter starting on
// quarterStart, i.e. quarterStart + 90 (spec.md §9 Open Question 2).
func QuarterEnd(quarterStart string) string {
	return model.AddDays(quarterStart, QuarterDays-1)
}
