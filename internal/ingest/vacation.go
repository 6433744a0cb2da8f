package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/notdienst/scheduler/pkg/errors"
	"github.com/notdienst/scheduler/pkg/model"
)

var vacationColumns = []string{"identifier", "start_date", "end_date"}

// ParseVacationCSV reads the vacation-blackout CSV, spec.md §6.
func ParseVacationCSV(r io.Reader) ([]model.Vacation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "vacation csv: read header")
	}
	col, err := columnIndex(header, vacationColumns)
	if err != nil {
		return nil, err
	}

	var out []model.Vacation
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, fmt.Sprintf("vacation csv: row %d", rowNum))
		}
		rowNum++

		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		identifier := get("identifier")
		start := get("start_date")
		end := get("end_date")
		if identifier == "" || start == "" || end == "" {
			return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("vacation csv: row %d has an empty required field", rowNum))
		}
		if start > end {
			return nil, apperrors.New(apperrors.CodeInvalidInput, fmt.Sprintf("vacation csv: row %d start_date %s is after end_date %s", rowNum, start, end))
		}

		out = append(out, model.Vacation{StaffID: identifier, Start: start, End: end})
	}
	return out, nil
}
