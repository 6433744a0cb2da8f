// Package export writes a finished schedule back out as CSV, spec.md §6.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/notdienst/scheduler/pkg/model"
)

var scheduleColumns = []string{"date", "weekday", "shift_type", "staff_identifier", "paired"}

var weekdayNames = map[int]string{
	1: "Monday", 2: "Tuesday", 3: "Wednesday", 4: "Thursday",
	5: "Friday", 6: "Saturday", 7: "Sunday",
}

// WriteScheduleCSV writes one row per assignment, sorted by date then
// shift type then staff ID for deterministic output, spec.md §6.
func WriteScheduleCSV(w io.Writer, schedule *model.Schedule) error {
	rows := make([]model.Assignment, len(schedule.Assignments))
	copy(rows, schedule.Assignments)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].ShiftType != rows[j].ShiftType {
			return rows[i].ShiftType < rows[j].ShiftType
		}
		return rows[i].StaffID < rows[j].StaffID
	})

	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleColumns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, a := range rows {
		paired := "no"
		if a.IsPaired {
			paired = "yes"
		}
		record := []string{
			formatDateDDMMYYYY(a.Date),
			weekdayNames[model.Weekday(a.Date)],
			string(a.ShiftType),
			a.StaffID,
			paired,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: write row for %s: %w", a.Date, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// formatDateDDMMYYYY converts a YYYY-MM-DD date to spec.md §6's export
// format, DD.MM.YYYY.
func formatDateDDMMYYYY(date string) string {
	if len(date) != 10 {
		return date
	}
	year, month, day := date[0:4], date[5:7], date[8:10]
	return day + "." + month + "." + year
}
