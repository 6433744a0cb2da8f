package ingest

import (
	"strings"
	"testing"

	"github.com/notdienst/scheduler/pkg/model"
)

const staffHeader = "name,identifier,adult,hours,beruf,reception,nd_possible,nd_alone,nd_max_consecutive,nd_min_consecutive,nd_exceptions,abteilung,birthday\n"

func TestParseStaffCSV_Basic(t *testing.T) {
	csv := staffHeader +
		"Anna,s1,1,38,tfa,1,1,0,4,2,1;7,OP,04-12\n" +
		"Ben,s2,0,20,azubi,0,1,1,,1,,Station,\n"

	staff, err := ParseStaffCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStaffCSV: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("got %d staff, want 2", len(staff))
	}

	s1 := staff[0]
	if s1.ID != "s1" || s1.Name != "Anna" || s1.Role != model.RoleTFA {
		t.Errorf("s1 = %+v, want id=s1 name=Anna role=TFA", s1)
	}
	if !s1.Adult || s1.WeeklyHours != 38 || s1.Department != model.DepartmentOP {
		t.Errorf("s1 = %+v, unexpected adult/hours/department", s1)
	}
	if s1.NightMaxConsecutive == nil || *s1.NightMaxConsecutive != 4 {
		t.Errorf("s1.NightMaxConsecutive = %v, want 4", s1.NightMaxConsecutive)
	}
	if s1.NightMinConsecutive != 2 {
		t.Errorf("s1.NightMinConsecutive = %d, want 2", s1.NightMinConsecutive)
	}
	if len(s1.NightExceptionWeekdays) != 2 || s1.NightExceptionWeekdays[0] != 1 || s1.NightExceptionWeekdays[1] != 7 {
		t.Errorf("s1.NightExceptionWeekdays = %v, want [1 7]", s1.NightExceptionWeekdays)
	}
	if s1.Birthday != "04-12" {
		t.Errorf("s1.Birthday = %q, want 04-12", s1.Birthday)
	}

	s2 := staff[1]
	if s2.Adult {
		t.Error("s2 should not be adult")
	}
	if s2.NightMaxConsecutive != nil {
		t.Errorf("s2.NightMaxConsecutive = %v, want nil (unbounded)", s2.NightMaxConsecutive)
	}
	if s2.Department != model.DepartmentStation {
		t.Errorf("s2.Department = %v, want Station", s2.Department)
	}
}

func TestParseStaffCSV_MissingColumn(t *testing.T) {
	csv := "name,identifier,adult\nAnna,s1,1\n"
	if _, err := ParseStaffCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for a header missing required columns")
	}
}

func TestParseStaffCSV_UnknownBeruf(t *testing.T) {
	csv := staffHeader + "Anna,s1,1,38,vet,1,1,0,,2,,OP,\n"
	if _, err := ParseStaffCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an unknown beruf")
	}
}

func TestParseStaffCSV_EmptyIdentifier(t *testing.T) {
	csv := staffHeader + "Anna,,1,38,tfa,1,1,0,,2,,OP,\n"
	if _, err := ParseStaffCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an empty identifier")
	}
}

func TestParseWeekdayList(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1;3;7", []int{1, 3, 7}, false},
		{"0", nil, true},
		{"8", nil, true},
		{"x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseWeekdayList(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWeekdayList(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err == nil && !equalInts(got, tt.want) {
			t.Errorf("parseWeekdayList(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "ja", "Y"} {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"0", "false", "no", "nein", ""} {
		if parseBool(v) {
			t.Errorf("parseBool(%q) = true, want false", v)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
