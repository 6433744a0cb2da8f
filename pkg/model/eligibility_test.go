package model

import "testing"

func tfa() *Staff {
	return &Staff{ID: "t1", Role: RoleTFA, Adult: true, NightPossible: true}
}

func azubi() *Staff {
	return &Staff{ID: "a1", Role: RoleAzubi, Adult: true, NightPossible: true}
}

func TestCanWork_MinorSundayBan(t *testing.T) {
	minor := &Staff{ID: "m1", Role: RoleAzubi, Adult: false}
	// 2026-04-05 is a Sunday.
	if CanWork(minor, SundayMorning, "2026-04-05") {
		t.Error("minor should never work a Sunday shift")
	}
	if !CanWork(minor, SaturdayMorning, "2026-04-04") {
		t.Error("minor Azubi should be able to work Saturday 10-19")
	}
}

func TestCanWork_InternWeekendBan(t *testing.T) {
	intern := &Staff{ID: "i1", Role: RoleIntern, Adult: true, NightPossible: true}
	if CanWork(intern, SaturdayLate, "2026-04-04") {
		t.Error("intern should never work a Saturday shift")
	}
	if CanWork(intern, SundayMorning, "2026-04-05") {
		t.Error("intern should never work a Sunday shift")
	}
	if !CanWork(intern, NightMonTue, "2026-04-06") {
		t.Error("intern should be able to work a night shift")
	}
}

func TestCanWork_NightRequiresPossible(t *testing.T) {
	s := tfa()
	s.NightPossible = false
	if CanWork(s, NightMonTue, "2026-04-06") {
		t.Error("staff without night_possible should not work nights")
	}
}

func TestCanWork_NightExceptionWeekday(t *testing.T) {
	s := tfa()
	s.NightExceptionWeekdays = []int{1} // Monday
	if CanWork(s, NightMonTue, "2026-04-06") {
		t.Error("night on an exception weekday should be rejected")
	}
}

func TestCanWork_SaturdaySlots(t *testing.T) {
	tests := []struct {
		name      string
		staff     *Staff
		shiftType ShiftType
		want      bool
	}{
		{"Sa_10-19 Azubi only: TFA rejected", tfa(), SaturdayMorning, false},
		{"Sa_10-19 Azubi only: Azubi accepted", azubi(), SaturdayMorning, true},
		{"Sa_10-21 TFA accepted", tfa(), SaturdayEvening, true},
		{"Sa_10-21 Azubi without reception rejected", azubi(), SaturdayEvening, false},
		{"Sa_10-22 TFA only: TFA accepted", tfa(), SaturdayLate, true},
		{"Sa_10-22 TFA only: Azubi rejected", azubi(), SaturdayLate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWork(tt.staff, tt.shiftType, "2026-04-04"); got != tt.want {
				t.Errorf("CanWork() = %v, want %v", got, tt.want)
			}
		})
	}

	recep := azubi()
	recep.ReceptionCapable = true
	if !CanWork(recep, SaturdayEvening, "2026-04-04") {
		t.Error("reception-capable Azubi should be allowed on Sa_10-21")
	}
}

func TestCanWork_SundaySlots(t *testing.T) {
	adultAzubi := azubi()
	if !CanWork(adultAzubi, SundayExtra, "2026-04-05") {
		t.Error("adult Azubi should work So_8-20:30")
	}
	if CanWork(tfa(), SundayExtra, "2026-04-05") {
		t.Error("TFA should not work So_8-20:30")
	}
	if !CanWork(tfa(), SundayMorning, "2026-04-05") {
		t.Error("TFA should work So_8-20")
	}
}

func TestNightShiftForWeekday(t *testing.T) {
	cases := map[int]ShiftType{
		1: NightMonTue,
		6: NightSatSun,
		7: NightSunMon,
	}
	for wd, want := range cases {
		if got := NightShiftForWeekday(wd); got != want {
			t.Errorf("NightShiftForWeekday(%d) = %v, want %v", wd, got, want)
		}
	}
}

func TestShiftTypeCategoryHelpers(t *testing.T) {
	if !SaturdayMorning.IsWeekendShift() || SaturdayMorning.IsNightShift() {
		t.Error("SaturdayMorning should be weekend, not night")
	}
	if !NightMonTue.IsNightShift() || NightMonTue.IsWeekendShift() {
		t.Error("NightMonTue should be night, not weekend")
	}
	if !NightSunMon.IsVetPresentNight() || !NightMonTue.IsVetPresentNight() {
		t.Error("NightSunMon and NightMonTue should be vet-present")
	}
	if NightTueWed.IsVetPresentNight() {
		t.Error("NightTueWed should not be vet-present")
	}
}
