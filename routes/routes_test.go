package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"lexschedule-backend/config"
	"lexschedule-backend/models"
	"lexschedule-backend/services"
	"lexschedule-backend/store"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *services.FeedNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	config.Store = st

	feed := services.NewFeedNotifier()
	reminders := services.NewReminderService(st, feed)

	cacheDir := t.TempDir()
	cache := services.NewAssetCache(cacheDir, filepath.Join(cacheDir, "public"), "gen-test", nil)

	return SetupRouter(Deps{
		Feed:      feed,
		Notifier:  feed,
		Reminders: reminders,
		Cache:     cache,
	}), feed
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listAppointments(t *testing.T, r *gin.Engine, query string) []models.Appointment {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/appointments"+query, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var appts []models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &appts))
	return appts
}

func TestAppointmentLifecycle(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", gin.H{
		"clientName": "Ahmed",
		"caseType":   "Criminal",
		"date":       time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.DefaultDescription, created.Description)
	require.False(t, created.CreatedAt.IsZero())

	require.Len(t, listAppointments(t, r, ""), 1)

	// Editing preserves id and creation time.
	w = doJSON(t, r, http.MethodPut, "/api/appointments/"+created.ID.String(), gin.H{
		"clientName": "Ahmed Benali",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var edited models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edited))
	require.Equal(t, created.ID, edited.ID)
	require.True(t, created.CreatedAt.Equal(edited.CreatedAt))
	require.Equal(t, "Ahmed Benali", edited.ClientName)

	// Archiving removes it from active views but not from history.
	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+created.ID.String()+"/archive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, listAppointments(t, r, ""))
	require.Len(t, listAppointments(t, r, "?tab=history"), 1)

	// Restoring puts it back.
	w = doJSON(t, r, http.MethodPost, "/api/appointments/"+created.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, listAppointments(t, r, ""), 1)

	// Deletion is permanent, gone from every view.
	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, listAppointments(t, r, ""))
	require.Empty(t, listAppointments(t, r, "?tab=history"))

	w = doJSON(t, r, http.MethodDelete, "/api/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointmentValidation(t *testing.T) {
	r, _ := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", gin.H{
		"caseType": "Criminal",
		"date":     time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/appointments", gin.H{
		"clientName": "Ahmed",
		"caseType":   "NotACaseType",
		"date":       time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEnableNotificationsDeliversPendingReminder(t *testing.T) {
	r, feed := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", gin.H{
		"clientName": "Ahmed",
		"caseType":   "Criminal",
		"date":       time.Now().Add(20 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Nothing delivered while the toggle is off.
	require.Empty(t, feed.Delivered())

	w = doJSON(t, r, http.MethodPut, "/api/settings/notifications", gin.H{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, feed.Delivered(), 1)
	require.Contains(t, feed.Delivered()[0].Title, "Ahmed")

	// Toggling again does not duplicate the reminder.
	w = doJSON(t, r, http.MethodPut, "/api/settings/notifications", gin.H{"enabled": true})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, feed.Delivered(), 1)

	// The feed is exposed to the shell and can be dismissed.
	w = doJSON(t, r, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Ahmed")

	w = doJSON(t, r, http.MethodDelete, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, feed.Delivered())
}

func TestExportEndpoints(t *testing.T) {
	r, _ := setupTestRouter(t)

	// Calendar export with no active records is a reported no-op.
	w := doJSON(t, r, http.MethodGet, "/api/export/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "No appointments to export")

	w = doJSON(t, r, http.MethodPost, "/api/appointments", gin.H{
		"clientName": "Ahmed",
		"caseType":   "Civil",
		"date":       time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/export/calendar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	require.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")

	w = doJSON(t, r, http.MethodGet, "/api/export/csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Equal(t, 2, len(strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")),
		"header row plus one record")
}

func TestImportEndpointIsAllOrNothing(t *testing.T) {
	r, _ := setupTestRouter(t)

	upload := func(content string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "backup.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/import/csv", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	good := string(services.ExportCSV([]models.Appointment{{
		ClientName:  "Sara",
		CaseType:    models.CaseFamily,
		Date:        time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Description: "x",
	}}))

	w := upload(good)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, listAppointments(t, r, ""), 1)

	bad := good + fmt.Sprintf("%q,%q,%q,%q,%q,%q,%q,%q\n", "Omar", "", "", "bad type", "2025/03/01", "10:00", "x", "لا")
	w = upload(bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	// The failed import applied nothing.
	require.Len(t, listAppointments(t, r, ""), 1)
}
