package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lexschedule-backend/models"
)

var importNow = time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

func TestImportCSVRoundTrip(t *testing.T) {
	exported := string(ExportCSV(exportFixture()))

	imported, err := ImportCSV(strings.NewReader(exported), importNow)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	require.Equal(t, "Ahmed", imported[0].ClientName)
	require.Equal(t, "+212600000001", imported[0].ClientPhone)
	require.Equal(t, "2025/114", imported[0].FileNumber)
	require.Equal(t, models.CaseCriminal, imported[0].CaseType)
	require.Equal(t, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), imported[0].Date)
	require.False(t, imported[0].Archived)

	require.Equal(t, "Sara", imported[1].ClientName)
	require.True(t, imported[1].Archived)

	// Imported rows are new records.
	require.NotEqual(t, imported[0].ID, imported[1].ID)
	require.Equal(t, importNow, imported[0].CreatedAt)
}

func TestImportCSVRejectsWholeFileOnBadRow(t *testing.T) {
	good := string(ExportCSV(exportFixture()))
	bad := good + `"Omar","","","no such type","2025/03/01","10:00","x","لا"` + "\n"

	_, err := ImportCSV(strings.NewReader(bad), importNow)
	require.Error(t, err)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Equal(t, 4, rowErr.Line)
}

func TestImportCSVRejectsWrongColumnCount(t *testing.T) {
	file := string(ExportCSV(nil)) + `"Omar","only","three"` + "\n"

	_, err := ImportCSV(strings.NewReader(file), importNow)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
}

func TestImportCSVRejectsEmptyName(t *testing.T) {
	file := string(ExportCSV(nil)) + `"","","","مدني","2025/03/01","10:00","x","لا"` + "\n"

	_, err := ImportCSV(strings.NewReader(file), importNow)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	require.Contains(t, rowErr.Reason, "client name")
}

func TestImportCSVRejectsBadDate(t *testing.T) {
	file := string(ExportCSV(nil)) + `"Omar","","","مدني","yesterday","10:00","x","لا"` + "\n"

	_, err := ImportCSV(strings.NewReader(file), importNow)
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
}

func TestImportCSVEmptyAndHeaderlessFiles(t *testing.T) {
	_, err := ImportCSV(strings.NewReader(""), importNow)
	require.ErrorIs(t, err, ErrEmptyImport)

	_, err = ImportCSV(strings.NewReader(string(ExportCSV(nil))), importNow)
	require.ErrorIs(t, err, ErrEmptyImport)

	_, err = ImportCSV(strings.NewReader(`"a","b","c"`+"\n"), importNow)
	require.ErrorIs(t, err, ErrMissingHeader)
}
