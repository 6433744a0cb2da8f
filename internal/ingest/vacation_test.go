package ingest

import (
	"strings"
	"testing"
)

func TestParseVacationCSV_Basic(t *testing.T) {
	csv := "identifier,start_date,end_date\n" +
		"s1,2026-01-05,2026-01-12\n" +
		"s2,2026-02-01,2026-02-01\n"

	vacations, err := ParseVacationCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseVacationCSV: %v", err)
	}
	if len(vacations) != 2 {
		t.Fatalf("got %d vacations, want 2", len(vacations))
	}
	if vacations[0].StaffID != "s1" || vacations[0].Start != "2026-01-05" || vacations[0].End != "2026-01-12" {
		t.Errorf("vacations[0] = %+v", vacations[0])
	}
}

func TestParseVacationCSV_StartAfterEnd(t *testing.T) {
	csv := "identifier,start_date,end_date\ns1,2026-01-12,2026-01-05\n"
	if _, err := ParseVacationCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error when start_date is after end_date")
	}
}

func TestParseVacationCSV_EmptyField(t *testing.T) {
	csv := "identifier,start_date,end_date\ns1,,2026-01-05\n"
	if _, err := ParseVacationCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for an empty required field")
	}
}

func TestParseVacationCSV_MissingColumn(t *testing.T) {
	csv := "identifier,start_date\ns1,2026-01-05\n"
	if _, err := ParseVacationCSV(strings.NewReader(csv)); err == nil {
		t.Fatal("expected an error for a header missing end_date")
	}
}
