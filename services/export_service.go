package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"lexschedule-backend/models"
)

// ErrNothingToExport is returned when a calendar export finds no active
// appointments; the caller reports a no-op instead of producing a degenerate
// file.
var ErrNothingToExport = errors.New("no active appointments to export")

// csvHeaders is the backup file's header row, matching what the import path
// expects back.
var csvHeaders = []string{
	"اسم الموكل",
	"رقم الهاتف",
	"رقم الملف",
	"نوع القضية",
	"تاريخ الجلسة",
	"الساعة",
	"التفاصيل",
	"مؤرشف",
}

const (
	csvDateLayout = "2006/01/02"
	csvTimeLayout = "15:04"
)

// ExportCSV renders every record, active and archived, as a UTF-8 CSV backup:
// a byte-order marker for encoding detection, a header row, then one row of
// quoted fields per record in input order.
func ExportCSV(appts []models.Appointment) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	writeCSVRow(&b, csvHeaders)

	for _, appt := range appts {
		archived := "لا"
		if appt.Archived {
			archived = "نعم"
		}
		writeCSVRow(&b, []string{
			appt.ClientName,
			appt.ClientPhone,
			appt.FileNumber,
			appt.CaseType.Label(),
			appt.Date.Format(csvDateLayout),
			appt.Date.Format(csvTimeLayout),
			appt.Description,
			archived,
		})
	}
	return []byte(b.String())
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ExportCalendar renders all active appointments as an iCalendar document:
// one 1-hour VEVENT per record, UID derived from the record id, timestamps in
// UTC basic format.
func ExportCalendar(appts []models.Appointment, now time.Time) (string, error) {
	active := make([]models.Appointment, 0, len(appts))
	for _, appt := range appts {
		if !appt.Archived {
			active = append(active, appt)
		}
	}
	if len(active) == 0 {
		return "", ErrNothingToExport
	}

	cal := ics.NewCalendar()
	cal.SetProductId("-//Smart Lawyer App//AR")
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	for _, appt := range active {
		event := cal.AddEvent(appt.ID.String() + "@smartlawyer")
		event.SetDtStampTime(now.UTC())
		event.SetStartAt(appt.Date.UTC())
		event.SetEndAt(appt.Date.Add(time.Hour).UTC())
		event.SetSummary("جلسة: " + appt.ClientName)
		event.SetDescription(calendarDescription(appt))
	}

	return cal.Serialize(), nil
}

func calendarDescription(appt models.Appointment) string {
	return fmt.Sprintf("نوع القضية: %s\nرقم الملف: %s\nالهاتف: %s\n%s",
		appt.CaseType.Label(),
		orPlaceholder(appt.FileNumber),
		orPlaceholder(appt.ClientPhone),
		appt.Description)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "---"
	}
	return s
}
