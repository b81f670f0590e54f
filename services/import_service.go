package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexschedule-backend/models"
)

// The import path is all-or-nothing: one bad row rejects the whole file, so a
// partial backup is never mixed into the collection.

var (
	ErrEmptyImport    = errors.New("import file is empty")
	ErrUnreadableFile = errors.New("import file is not valid CSV")
	ErrMissingHeader  = errors.New("import file is missing the header row")
)

// RowError pinpoints the first row that failed validation.
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
}

// ImportCSV parses a backup produced by ExportCSV. Imported records get fresh
// ids and creation times; the caller appends them to the collection only when
// the whole file validated.
func ImportCSV(r io.Reader, now time.Time) ([]models.Appointment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	text := strings.TrimPrefix(string(data), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyImport
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}
	if len(rows[0]) == 0 || rows[0][0] != csvHeaders[0] {
		return nil, ErrMissingHeader
	}

	appts := make([]models.Appointment, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header
		appt, err := parseImportRow(row, line, now)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if len(appts) == 0 {
		return nil, ErrEmptyImport
	}
	return appts, nil
}

func parseImportRow(row []string, line int, now time.Time) (models.Appointment, error) {
	var appt models.Appointment

	if len(row) != len(csvHeaders) {
		return appt, &RowError{Line: line, Reason: fmt.Sprintf("expected %d fields, got %d", len(csvHeaders), len(row))}
	}

	name := strings.TrimSpace(row[0])
	if name == "" {
		return appt, &RowError{Line: line, Reason: "client name is empty"}
	}

	caseType, ok := models.CaseTypeFromLabel(strings.TrimSpace(row[3]))
	if !ok {
		return appt, &RowError{Line: line, Reason: fmt.Sprintf("unknown case type %q", row[3])}
	}

	date, err := time.ParseInLocation(csvDateLayout+" "+csvTimeLayout,
		strings.TrimSpace(row[4])+" "+strings.TrimSpace(row[5]), now.Location())
	if err != nil {
		return appt, &RowError{Line: line, Reason: fmt.Sprintf("bad date/time %q %q", row[4], row[5])}
	}

	description := strings.TrimSpace(row[6])
	if description == "" {
		description = models.DefaultDescription
	}

	return models.Appointment{
		ID:          uuid.New(),
		ClientName:  name,
		ClientPhone: strings.TrimSpace(row[1]),
		FileNumber:  strings.TrimSpace(row[2]),
		CaseType:    caseType,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		Archived:    strings.TrimSpace(row[7]) == "نعم",
	}, nil
}
