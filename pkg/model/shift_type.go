package model

// ShiftType is a closed enumeration of the 13 symbolic shift slots the
// catalogue generator can emit. Replaces any "Sa_"/"So_"/"N_" string-prefix
// convention with explicit category accessors.
type ShiftType string

const (
	SaturdayMorning ShiftType = "SATURDAY_10_19"
	SaturdayEvening ShiftType = "SATURDAY_10_21"
	SaturdayLate    ShiftType = "SATURDAY_10_22"

	SundayMorning ShiftType = "SUNDAY_8_20"
	SundayLate    ShiftType = "SUNDAY_10_22"
	SundayExtra   ShiftType = "SUNDAY_8_2030"

	NightMonTue ShiftType = "NIGHT_MON_TUE"
	NightTueWed ShiftType = "NIGHT_TUE_WED"
	NightWedThu ShiftType = "NIGHT_WED_THU"
	NightThuFri ShiftType = "NIGHT_THU_FRI"
	NightFriSat ShiftType = "NIGHT_FRI_SAT"
	NightSatSun ShiftType = "NIGHT_SAT_SUN"
	NightSunMon ShiftType = "NIGHT_SUN_MON"
)

// ShiftCategory groups the 13 shift types into the three families the
// constraint model and validator treat distinctly.
type ShiftCategory string

const (
	CategorySaturday ShiftCategory = "saturday"
	CategorySunday   ShiftCategory = "sunday"
	CategoryNight    ShiftCategory = "night"
)

// nightByWeekday maps ISO weekday (1=Mon..7=Sun) to the night shift type
// starting on that day, per spec.md §4.1.
var nightByWeekday = map[int]ShiftType{
	1: NightMonTue,
	2: NightTueWed,
	3: NightWedThu,
	4: NightThuFri,
	5: NightFriSat,
	6: NightSatSun,
	7: NightSunMon,
}

// NightShiftForWeekday returns the night ShiftType that starts on the given
// ISO weekday.
func NightShiftForWeekday(weekday int) ShiftType {
	return nightByWeekday[weekday]
}

// Category returns the ShiftCategory this ShiftType belongs to.
func (t ShiftType) Category() ShiftCategory {
	switch t {
	case SaturdayMorning, SaturdayEvening, SaturdayLate:
		return CategorySaturday
	case SundayMorning, SundayLate, SundayExtra:
		return CategorySunday
	default:
		return CategoryNight
	}
}

// IsWeekendShift reports whether t is a Saturday or Sunday shift.
func (t ShiftType) IsWeekendShift() bool {
	cat := t.Category()
	return cat == CategorySaturday || cat == CategorySunday
}

// IsNightShift reports whether t is one of the seven night-of-weekday
// variants.
func (t ShiftType) IsNightShift() bool {
	return t.Category() == CategoryNight
}

// IsVetPresentNight reports whether an off-model veterinarian is on site
// during this night, which relaxes the coverage and pairing rules.
func (t ShiftType) IsVetPresentNight() bool {
	return t == NightSunMon || t == NightMonTue
}

// RequiredWeekday returns the ISO weekday this shift type may only occur
// on, per spec.md §4.1 (a night shift's weekday must match its date).
func (t ShiftType) RequiredWeekday() int {
	switch t.Category() {
	case CategorySaturday:
		return 6
	case CategorySunday:
		return 7
	default:
		for wd, nt := range nightByWeekday {
			if nt == t {
				return wd
			}
		}
		return 0
	}
}
