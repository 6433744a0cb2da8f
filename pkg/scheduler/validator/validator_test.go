package validator

import (
	"testing"

	"github.com/notdienst/scheduler/pkg/model"
)

func staffByID(staff ...*model.Staff) map[string]*model.Staff {
	m := make(map[string]*model.Staff, len(staff))
	for _, s := range staff {
		m[s.ID] = s
	}
	return m
}

func TestCheckUnknownStaff(t *testing.T) {
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "ghost", Date: "2026-01-03", ShiftType: model.SaturdayMorning},
	}}
	v := checkUnknownStaff(schedule, staffByID())
	if len(v) != 1 {
		t.Fatalf("got %d violations, want 1", len(v))
	}
}

func TestCheckMinorSundayBan(t *testing.T) {
	minor := &model.Staff{ID: "s1", Adult: false}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "s1", Date: "2026-01-04", ShiftType: model.SundayMorning},
	}}
	v := checkMinorSundayBan(schedule, staffByID(minor))
	if len(v) != 1 {
		t.Fatalf("got %d violations, want 1", len(v))
	}

	adult := &model.Staff{ID: "s1", Adult: true}
	v = checkMinorSundayBan(schedule, staffByID(adult))
	if len(v) != 0 {
		t.Fatalf("got %d violations for an adult, want 0", len(v))
	}
}

func TestCheckInternWeekendBan(t *testing.T) {
	intern := &model.Staff{ID: "s1", Role: model.RoleIntern}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayMorning},
	}}
	v := checkInternWeekendBan(schedule, staffByID(intern))
	if len(v) != 1 {
		t.Fatalf("got %d violations, want 1", len(v))
	}
}

func TestCheckSameDayDoubleBooking(t *testing.T) {
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayMorning},
		{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayEvening},
	}}
	v := checkSameDayDoubleBooking(schedule)
	if len(v) != 1 {
		t.Fatalf("got %d violations, want 1", len(v))
	}
}

func TestCheckShiftCoverage_WeekendExactlyOne(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-03", ShiftType: model.SaturdayMorning}}
	schedule := &model.Schedule{Assignments: nil}
	v := checkShiftCoverage(schedule, shifts, staffByID())
	if len(v) != 1 {
		t.Fatalf("got %d violations for an unstaffed Saturday slot, want 1", len(v))
	}

	schedule.Assignments = []model.Assignment{{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayMorning}}
	v = checkShiftCoverage(schedule, shifts, staffByID(&model.Staff{ID: "s1"}))
	if len(v) != 0 {
		t.Fatalf("got %d violations for a correctly-staffed Saturday slot, want 0", len(v))
	}
}

func TestCheckShiftCoverage_RegularNightNeedsNonAzubi(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-06", ShiftType: model.NightTueWed}}
	azubi := &model.Staff{ID: "a1", Role: model.RoleAzubi}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "a1", Date: "2026-01-06", ShiftType: model.NightTueWed},
	}}
	v := checkShiftCoverage(schedule, shifts, staffByID(azubi))
	if len(v) != 1 {
		t.Fatalf("got %d violations for an Azubi-only regular night, want 1 (no non-Azubi present)", len(v))
	}
}

func TestCheckNightPairingRequired_VetPresentNeedsExactlyOneNonAzubi(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-05", ShiftType: model.NightMonTue}}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "t1", Date: "2026-01-05", ShiftType: model.NightMonTue},
		{StaffID: "t2", Date: "2026-01-05", ShiftType: model.NightMonTue},
	}}
	byID := staffByID(
		&model.Staff{ID: "t1", Role: model.RoleTFA},
		&model.Staff{ID: "t2", Role: model.RoleTFA},
	)
	v := checkNightPairingRequired(schedule, shifts, byID)
	if len(v) != 1 {
		t.Fatalf("got %d violations for two non-Azubis on a vet-present night, want 1", len(v))
	}
}

func TestCheckAzubiNightPairing_AzubiAloneOnRegularNight(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-06", ShiftType: model.NightTueWed}}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "a1", Date: "2026-01-06", ShiftType: model.NightTueWed},
	}}
	v := checkAzubiNightPairing(schedule, shifts, staffByID(&model.Staff{ID: "a1", Role: model.RoleAzubi}))
	if len(v) != 1 {
		t.Fatalf("got %d violations for an unaccompanied Azubi, want 1", len(v))
	}
}

func TestCheckNDAloneImproperPairing(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-06", ShiftType: model.NightTueWed}}
	solo := &model.Staff{ID: "t1", Role: model.RoleTFA, NightAlone: false}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "t1", Date: "2026-01-06", ShiftType: model.NightTueWed},
	}}
	v := checkNDAloneImproperPairing(schedule, shifts, staffByID(solo))
	if len(v) != 1 {
		t.Fatalf("got %d violations for a must-be-paired staff member alone on a night, want 1", len(v))
	}
}

func TestCheckInternNightCap(t *testing.T) {
	intern := &model.Staff{ID: "i1", Role: model.RoleIntern}
	var assignments []model.Assignment
	for i := 0; i < 3; i++ {
		assignments = append(assignments, model.Assignment{StaffID: "i1", Date: "2026-01-0" + string(rune('1'+i)), ShiftType: model.NightMonTue})
	}
	schedule := &model.Schedule{Assignments: assignments}
	v := checkInternNightCap(schedule, staffByID(intern))
	if len(v) != 1 {
		t.Fatalf("got %d violations for an intern with only 3 quarterly nights (below the 6-9 band), want 1", len(v))
	}
}

func TestCheckWeekendIsolation(t *testing.T) {
	s1 := &model.Staff{ID: "s1"}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayMorning},
		{StaffID: "s1", Date: "2026-01-04", ShiftType: model.SundayMorning},
	}}
	v := checkWeekendIsolation(schedule, staffByID(s1))
	if len(v) == 0 {
		t.Fatal("expected a violation for working the weekend shift and the adjacent day")
	}
}

func TestCheckDepartmentSameNight(t *testing.T) {
	shifts := []model.Shift{{Date: "2026-01-06", ShiftType: model.NightTueWed}}
	byID := staffByID(
		&model.Staff{ID: "t1", Department: model.DepartmentOP},
		&model.Staff{ID: "t2", Department: model.DepartmentOP},
	)
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "t1", Date: "2026-01-06", ShiftType: model.NightTueWed},
		{StaffID: "t2", Date: "2026-01-06", ShiftType: model.NightTueWed},
	}}
	v := checkDepartmentSameNight(schedule, shifts, byID)
	if len(v) != 1 {
		t.Fatalf("got %d violations for two same-department staff sharing a night, want 1", len(v))
	}
}

func TestCheckBlockSpacing_WithinGap(t *testing.T) {
	s1 := &model.Staff{ID: "s1"}
	schedule := &model.Schedule{Assignments: []model.Assignment{
		{StaffID: "s1", Date: "2026-01-03", ShiftType: model.SaturdayMorning},
		{StaffID: "s1", Date: "2026-01-10", ShiftType: model.SaturdayMorning},
	}}
	v := checkBlockSpacing(schedule, staffByID(s1), nil)
	if len(v) != 1 {
		t.Fatalf("got %d violations for two block starts 7 days apart (< 21), want 1", len(v))
	}
}

func TestCheckNightMaxConsecutive(t *testing.T) {
	max := 2
	s1 := &model.Staff{ID: "s1", NightMaxConsecutive: &max}
	schedule := &model.Schedule{
		QuarterStart: "2026-01-01",
		QuarterEnd:   "2026-03-31",
		Assignments: []model.Assignment{
			{StaffID: "s1", Date: "2026-01-05", ShiftType: model.NightMonTue},
			{StaffID: "s1", Date: "2026-01-06", ShiftType: model.NightTueWed},
			{StaffID: "s1", Date: "2026-01-07", ShiftType: model.NightWedThu},
		},
	}
	v := checkNightMaxConsecutive(schedule, staffByID(s1), nil)
	if len(v) == 0 {
		t.Fatal("expected a violation for 3 consecutive nights against a max of 2")
	}
}

// TestCheckNightMaxConsecutive_NonConsecutiveDatesNotFlagged guards against
// treating calendar-non-adjacent night dates as a consecutive run: three
// nights a week apart never form a run longer than 1, so a max of 2 must
// not be flagged.
func TestCheckNightMaxConsecutive_NonConsecutiveDatesNotFlagged(t *testing.T) {
	max := 2
	s1 := &model.Staff{ID: "s1", NightMaxConsecutive: &max}
	schedule := &model.Schedule{
		QuarterStart: "2026-01-01",
		QuarterEnd:   "2026-03-31",
		Assignments: []model.Assignment{
			{StaffID: "s1", Date: "2026-01-05", ShiftType: model.NightMonTue},
			{StaffID: "s1", Date: "2026-01-12", ShiftType: model.NightMonTue},
			{StaffID: "s1", Date: "2026-01-19", ShiftType: model.NightMonTue},
		},
	}
	v := checkNightMaxConsecutive(schedule, staffByID(s1), nil)
	if len(v) != 0 {
		t.Fatalf("got %d violations for three nights a week apart, want 0: %+v", len(v), v)
	}
}

func TestCheckMinConsecutiveNights_IsolatedNightFlagged(t *testing.T) {
	s1 := &model.Staff{ID: "s1", NightPossible: true, NightMinConsecutive: 2}
	schedule := &model.Schedule{
		QuarterStart: "2026-01-01",
		QuarterEnd:   "2026-03-31",
		Assignments: []model.Assignment{
			{StaffID: "s1", Date: "2026-01-20", ShiftType: model.NightTueWed},
		},
	}
	v := checkMinConsecutiveNights(schedule, staffByID(s1), nil)
	if len(v) != 1 {
		t.Fatalf("got %d violations for an isolated single night against a min of 2, want 1", len(v))
	}
}

func TestCheckMinConsecutiveNights_FullRunNotFlagged(t *testing.T) {
	s1 := &model.Staff{ID: "s1", NightPossible: true, NightMinConsecutive: 2}
	schedule := &model.Schedule{
		QuarterStart: "2026-01-01",
		QuarterEnd:   "2026-03-31",
		Assignments: []model.Assignment{
			{StaffID: "s1", Date: "2026-01-20", ShiftType: model.NightTueWed},
			{StaffID: "s1", Date: "2026-01-21", ShiftType: model.NightWedThu},
		},
	}
	v := checkMinConsecutiveNights(schedule, staffByID(s1), nil)
	if len(v) != 0 {
		t.Fatalf("got %d violations for a full 2-night run against a min of 2, want 0: %+v", len(v), v)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	staff := []*model.Staff{
		{ID: "s1", Role: model.RoleTFA, Adult: true, Department: model.DepartmentOP},
		{ID: "s2", Role: model.RoleTFA, Adult: true, Department: model.DepartmentOP},
		{ID: "a1", Role: model.RoleAzubi, Adult: true},
	}
	shifts := []model.Shift{
		{Date: "2026-01-05", ShiftType: model.NightMonTue},
		{Date: "2026-01-06", ShiftType: model.NightTueWed},
	}
	schedule := &model.Schedule{
		QuarterStart: "2026-01-01",
		QuarterEnd:   "2026-03-31",
		Assignments: []model.Assignment{
			{StaffID: "s1", Date: "2026-01-05", ShiftType: model.NightMonTue},
			{StaffID: "s2", Date: "2026-01-06", ShiftType: model.NightTueWed},
			{StaffID: "a1", Date: "2026-01-06", ShiftType: model.NightTueWed},
		},
	}

	first := Validate(schedule, staff, shifts, nil, nil)
	for i := 0; i < 20; i++ {
		again := Validate(schedule, staff, shifts, nil, nil)
		if len(again.HardViolations) != len(first.HardViolations) {
			t.Fatalf("run %d: violation count changed: %d vs %d", i, len(again.HardViolations), len(first.HardViolations))
		}
		for j := range first.HardViolations {
			if again.HardViolations[j] != first.HardViolations[j] {
				t.Fatalf("run %d: violation order/content changed at index %d: %+v vs %+v", i, j, again.HardViolations[j], first.HardViolations[j])
			}
		}
		if again.SoftPenalty != first.SoftPenalty {
			t.Fatalf("run %d: soft penalty changed: %v vs %v", i, again.SoftPenalty, first.SoftPenalty)
		}
	}
}
