package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexschedule-backend/config"
	"lexschedule-backend/models"
	"lexschedule-backend/services"
	"lexschedule-backend/utils"
)

// ExportCSV downloads the full collection, active and archived, as a CSV
// backup.
func ExportCSV(c *gin.Context) {
	body := services.ExportCSV(config.Store.LoadAppointments())
	filename := fmt.Sprintf("lexschedule_backup_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// ExportCalendar downloads all active appointments as an iCalendar file.
// With nothing eligible it reports a no-op instead of an empty calendar.
func ExportCalendar(c *gin.Context) {
	body, err := services.ExportCalendar(config.Store.LoadAppointments(), time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNothingToExport) {
			c.JSON(http.StatusOK, gin.H{"message": "No appointments to export"})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build calendar export")
		return
	}

	filename := fmt.Sprintf("lexschedule_%s.ics", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// ImportCSV restores appointments from a backup file. The whole file is
// validated before anything is applied; one bad row rejects the import.
func ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing file upload")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer f.Close()

	imported, err := services.ImportCSV(f, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Import rejected: "+err.Error())
		return
	}

	err = config.Store.Update(func(appts []models.Appointment) []models.Appointment {
		return append(appts, imported...)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save imported appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": len(imported)})
}
