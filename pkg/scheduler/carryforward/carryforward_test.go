package carryforward

import (
	"math"
	"testing"

	"github.com/notdienst/scheduler/pkg/model"
)

func TestCompute_GroupDeltasSumToZero(t *testing.T) {
	staff := []*model.Staff{
		{ID: "t1", Role: model.RoleTFA, WeeklyHours: 40},
		{ID: "t2", Role: model.RoleTFA, WeeklyHours: 40},
		{ID: "t3", Role: model.RoleTFA, WeeklyHours: 20},
		{ID: "a1", Role: model.RoleAzubi, WeeklyHours: 40},
	}

	schedule := &model.Schedule{
		QuarterStart: "2026-04-01",
		QuarterEnd:   "2026-06-30",
		Assignments: []model.Assignment{
			{Date: "2026-04-04", ShiftType: model.SaturdayLate, StaffID: "t1"},
			{Date: "2026-04-05", ShiftType: model.SundayMorning, StaffID: "t1"},
			{Date: "2026-04-06", ShiftType: model.NightMonTue, StaffID: "t2"},
			{Date: "2026-04-11", ShiftType: model.SaturdayLate, StaffID: "t3"},
			{Date: "2026-04-07", ShiftType: model.NightTueWed, StaffID: "a1"},
		},
	}

	ctx := Compute(schedule, staff, nil)

	if len(ctx.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(ctx.Entries))
	}

	if sum := GroupDeltaSum(ctx.Entries, model.RoleTFA); math.Abs(sum) > 0.01 {
		t.Errorf("TFA group delta sum = %v, want ~0", sum)
	}
	if sum := GroupDeltaSum(ctx.Entries, model.RoleAzubi); math.Abs(sum) > 0.01 {
		t.Errorf("Azubi group delta sum = %v, want ~0", sum)
	}
}

func TestCompute_TrailingWindowIsLast21Days(t *testing.T) {
	staff := []*model.Staff{{ID: "t1", Role: model.RoleTFA, WeeklyHours: 40}}
	schedule := &model.Schedule{
		QuarterStart: "2026-04-01",
		QuarterEnd:   "2026-06-30",
		Assignments: []model.Assignment{
			{Date: "2026-06-05", ShiftType: model.NightFriSat, StaffID: "t1"}, // outside trailing window
			{Date: "2026-06-25", ShiftType: model.NightThuFri, StaffID: "t1"}, // inside trailing window
		},
	}
	ctx := Compute(schedule, staff, nil)
	if len(ctx.Trailing) != 1 {
		t.Fatalf("expected 1 trailing assignment, got %d", len(ctx.Trailing))
	}
	if ctx.Trailing[0].Date != "2026-06-25" {
		t.Errorf("trailing assignment date = %s, want 2026-06-25", ctx.Trailing[0].Date)
	}
}

func TestCompute_AvailableDaysAccountsForVacation(t *testing.T) {
	staff := []*model.Staff{{ID: "t1", Role: model.RoleTFA, WeeklyHours: 40}}
	schedule := &model.Schedule{
		QuarterStart: "2026-04-01",
		QuarterEnd:   "2026-06-30",
		Assignments: []model.Assignment{
			{Date: "2026-04-04", ShiftType: model.SaturdayLate, StaffID: "t1"},
		},
	}
	vacations := []model.Vacation{{StaffID: "t1", Start: "2026-04-01", End: "2026-04-10"}}

	withVacation := Compute(schedule, staff, vacations)
	withoutVacation := Compute(schedule, staff, nil)

	if withVacation.Entries[0].Normalized40h <= withoutVacation.Entries[0].Normalized40h {
		t.Error("normalized load should increase when available days shrink due to vacation")
	}
}
