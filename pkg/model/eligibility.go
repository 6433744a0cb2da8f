package model

// CanWork implements the §4.2 eligibility predicate: whether staff may in
// principle be assigned shiftType on date, ignoring vacations, birthdays
// and pairing (pairing is enforced by the constraint model, not here).
func CanWork(staff *Staff, shiftType ShiftType, date string) bool {
	weekday := Weekday(date)

	if !staff.Adult && shiftType.Category() == CategorySunday {
		return false
	}
	if staff.Role == RoleIntern && shiftType.IsWeekendShift() {
		return false
	}

	if shiftType.IsNightShift() {
		if !staff.NightPossible {
			return false
		}
		if staff.HasNightExceptionOn(weekday) {
			return false
		}
	}

	switch shiftType {
	case SaturdayMorning:
		return staff.Role == RoleAzubi
	case SaturdayEvening:
		return staff.Role == RoleTFA || (staff.Role == RoleAzubi && staff.ReceptionCapable)
	case SaturdayLate, SundayMorning, SundayLate:
		return staff.Role == RoleTFA
	case SundayExtra:
		return staff.Role == RoleAzubi && staff.Adult
	default:
		return true
	}
}
