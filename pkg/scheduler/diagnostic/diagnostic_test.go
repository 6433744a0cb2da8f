package diagnostic

import (
	"strings"
	"testing"

	"github.com/notdienst/scheduler/pkg/model"
)

func TestDiagnose_AlwaysReturnsAtLeastOneHint(t *testing.T) {
	staff := []*model.Staff{
		{ID: "s1", Role: model.RoleTFA, Adult: true, NightPossible: true},
	}
	hints := Diagnose(staff, nil)
	if len(hints) == 0 {
		t.Fatal("expected at least the generic fallback hint")
	}
}

func TestCheckSaturdayCapacity(t *testing.T) {
	staff := []*model.Staff{
		{ID: "a1", Role: model.RoleAzubi},
	}
	var shifts []model.Shift
	for i := 0; i < 20; i++ {
		shifts = append(shifts, model.Shift{Date: "2026-01-01", ShiftType: model.SaturdayMorning})
	}
	hint := checkSaturdayCapacity(staff, shifts)
	if hint == "" {
		t.Fatal("expected a Saturday capacity hint when azubis*13 < shifts")
	}
	if !strings.Contains(hint, "Azubi") {
		t.Errorf("hint = %q, want it to mention Azubi capacity", hint)
	}
}

func TestCheckSaturdayCapacity_Sufficient(t *testing.T) {
	staff := []*model.Staff{
		{ID: "a1", Role: model.RoleAzubi},
	}
	shifts := []model.Shift{{Date: "2026-01-01", ShiftType: model.SaturdayMorning}}
	if hint := checkSaturdayCapacity(staff, shifts); hint != "" {
		t.Errorf("expected no hint, got %q", hint)
	}
}

func TestCheckNoAdultAzubi(t *testing.T) {
	staff := []*model.Staff{
		{ID: "a1", Role: model.RoleAzubi, Adult: false},
	}
	if hint := checkNoAdultAzubi(staff); hint == "" {
		t.Fatal("expected a hint when no Azubi is an adult")
	}

	staff = append(staff, &model.Staff{ID: "a2", Role: model.RoleAzubi, Adult: true})
	if hint := checkNoAdultAzubi(staff); hint != "" {
		t.Errorf("expected no hint once an adult Azubi exists, got %q", hint)
	}
}

func TestCheckNightCapableNonAzubi(t *testing.T) {
	staff := []*model.Staff{
		{ID: "a1", Role: model.RoleAzubi, NightPossible: true},
	}
	if hint := checkNightCapableNonAzubi(staff); hint == "" {
		t.Fatal("expected a hint when no non-Azubi can work nights")
	}

	staff = append(staff, &model.Staff{ID: "t1", Role: model.RoleTFA, NightPossible: true})
	if hint := checkNightCapableNonAzubi(staff); hint != "" {
		t.Errorf("expected no hint once a non-Azubi night-capable staff exists, got %q", hint)
	}
}

func TestCheckExceptionsVsMinConsecutive(t *testing.T) {
	staff := []*model.Staff{
		{
			ID:                     "t1",
			Role:                   model.RoleTFA,
			NightPossible:          true,
			NightMinConsecutive:    0,
			NightExceptionWeekdays: []int{1, 2, 3, 4, 5, 6},
		},
	}
	hints := checkExceptionsVsMinConsecutive(staff)
	if len(hints) != 1 {
		t.Fatalf("expected 1 hint, got %d: %v", len(hints), hints)
	}
}

func TestCheckExceptionsVsNightRequired(t *testing.T) {
	staff := []*model.Staff{
		{ID: "t1", Role: model.RoleTFA, NightPossible: true, NightExceptionWeekdays: []int{1, 2, 3, 4, 5}},
	}
	hints := checkExceptionsVsNightRequired(staff)
	if len(hints) != 1 {
		t.Fatalf("expected 1 hint, got %d: %v", len(hints), hints)
	}
}
