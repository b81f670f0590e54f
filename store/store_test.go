package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"lexschedule-backend/models"
)

func testAppointments() []models.Appointment {
	return []models.Appointment{
		{
			ID:          uuid.New(),
			ClientName:  "Ahmed",
			ClientPhone: "+212600000001",
			FileNumber:  "2025/114",
			CaseType:    models.CaseCriminal,
			Date:        time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
			Description: "جلسة أولى",
			CreatedAt:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.New(),
			ClientName:  "Sara",
			CaseType:    models.CaseFamily,
			Date:        time.Date(2025, 1, 5, 10, 30, 0, 0, time.UTC),
			Description: models.DefaultDescription,
			CreatedAt:   time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
			Archived:    true,
		},
	}
}

func TestAppointmentsRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	appts := testAppointments()
	require.NoError(t, s.ReplaceAppointments(appts))
	require.Equal(t, appts, s.LoadAppointments())

	// Storing what was just loaded reproduces an equal collection.
	require.NoError(t, s.ReplaceAppointments(s.LoadAppointments()))
	require.Equal(t, appts, s.LoadAppointments())
}

func TestLoadAppointmentsEmptyWhenMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, s.LoadAppointments())
}

func TestLoadAppointmentsEmptyWhenCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "appointments"), []byte("{not json"), 0o644))
	require.Empty(t, s.LoadAppointments())
}

func TestReplaceOverwritesWholeCollection(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	appts := testAppointments()
	require.NoError(t, s.ReplaceAppointments(appts))
	require.NoError(t, s.ReplaceAppointments(appts[:1]))
	require.Len(t, s.LoadAppointments(), 1)
}

func TestMarkNotifiedAppendsWithoutDuplicates(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	require.NoError(t, s.MarkNotified(a))
	require.NoError(t, s.MarkNotified(b, a))

	ids := s.LoadNotifiedIDs()
	require.Equal(t, []uuid.UUID{a, b}, ids)
}

func TestPreferencesDefaultOff(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	prefs := s.Preferences()
	require.False(t, prefs.NotificationsEnabled)
	require.False(t, prefs.DarkMode)
	require.False(t, prefs.CommercialMode)
}

func TestPreferencesRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.SetNotificationsEnabled(true))
	require.NoError(t, s.SetDarkMode(true))
	require.NoError(t, s.SetCommercialMode(true))

	require.True(t, s.NotificationsEnabled())
	require.True(t, s.DarkMode())
	require.True(t, s.CommercialMode())

	require.NoError(t, s.SetNotificationsEnabled(false))
	require.False(t, s.NotificationsEnabled())
}
