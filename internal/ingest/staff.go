// Package ingest parses the scheduler's staff and vacation CSV inputs,
// spec.md §6. Malformed input fails fast here rather than surfacing as a
// solver crash later (spec.md §7).
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/notdienst/scheduler/pkg/errors"
	"github.com/notdienst/scheduler/pkg/model"
)

// staffColumns is the column set spec.md §6 requires.
var staffColumns = []string{
	"name", "identifier", "adult", "hours", "beruf", "reception",
	"nd_possible", "nd_alone", "nd_max_consecutive", "nd_min_consecutive",
	"nd_exceptions", "abteilung", "birthday",
}

var roleByBeruf = map[string]model.Role{
	"tfa":    model.RoleTFA,
	"azubi":  model.RoleAzubi,
	"intern": model.RoleIntern,
}

var departmentByAbteilung = map[string]model.Department{
	"op":      model.DepartmentOP,
	"station": model.DepartmentStation,
	"other":   model.DepartmentOther,
	"":        model.DepartmentOther,
}

// ParseStaffCSV reads the roster CSV, returning one *model.Staff per data
// row. The header row must contain every column in staffColumns. Columns
// are matched by name (case-insensitive, surrounding spaces ignored), so
// their order does not matter and extra columns are ignored.
func ParseStaffCSV(r io.Reader) ([]*model.Staff, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "staff csv: read header")
	}
	col, err := columnIndex(header, staffColumns)
	if err != nil {
		return nil, err
	}

	var out []*model.Staff
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, fmt.Sprintf("staff csv: row %d", rowNum))
		}
		rowNum++

		s, err := parseStaffRow(row, col)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, fmt.Sprintf("staff csv: row %d", rowNum))
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStaffRow(row []string, col map[string]int) (*model.Staff, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	identifier := get("identifier")
	if identifier == "" {
		return nil, fmt.Errorf("empty identifier")
	}

	role, ok := roleByBeruf[strings.ToLower(get("beruf"))]
	if !ok {
		return nil, fmt.Errorf("%s: unknown beruf %q", identifier, get("beruf"))
	}

	department, ok := departmentByAbteilung[strings.ToLower(get("abteilung"))]
	if !ok {
		return nil, fmt.Errorf("%s: unknown abteilung %q", identifier, get("abteilung"))
	}

	hours, err := strconv.Atoi(get("hours"))
	if err != nil {
		return nil, fmt.Errorf("%s: invalid hours %q", identifier, get("hours"))
	}

	var maxConsecutive *int
	if raw := get("nd_max_consecutive"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid nd_max_consecutive %q", identifier, raw)
		}
		maxConsecutive = &n
	}

	minConsecutive := 0
	if raw := get("nd_min_consecutive"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid nd_min_consecutive %q", identifier, raw)
		}
		minConsecutive = n
	}

	exceptions, err := parseWeekdayList(get("nd_exceptions"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", identifier, err)
	}

	return &model.Staff{
		ID:                     identifier,
		Name:                   get("name"),
		Role:                   role,
		Adult:                  parseBool(get("adult")),
		WeeklyHours:            hours,
		Department:             department,
		ReceptionCapable:       parseBool(get("reception")),
		NightPossible:          parseBool(get("nd_possible")),
		NightAlone:             parseBool(get("nd_alone")),
		NightMaxConsecutive:    maxConsecutive,
		NightMinConsecutive:    minConsecutive,
		NightExceptionWeekdays: exceptions,
		Birthday:               get("birthday"),
	}, nil
}

func parseWeekdayList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 7 {
			return nil, fmt.Errorf("invalid nd_exceptions entry %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "ja", "y":
		return true
	default:
		return false
	}
}

func columnIndex(header, want []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("csv missing required column %q", w))
		}
	}
	return idx, nil
}
