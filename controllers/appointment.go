package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lexschedule-backend/config"
	"lexschedule-backend/models"
	"lexschedule-backend/services"
	"lexschedule-backend/utils"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	ClientName  string    `json:"clientName" binding:"required"`
	ClientPhone *string   `json:"clientPhone"`
	FileNumber  *string   `json:"fileNumber"`
	CaseType    string    `json:"caseType" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	ClientName  *string    `json:"clientName"`
	ClientPhone *string    `json:"clientPhone"`
	FileNumber  *string    `json:"fileNumber"`
	CaseType    *string    `json:"caseType"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
}

// CreateAppointment records a new session for a client
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	caseType := models.CaseType(input.CaseType)
	if !caseType.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown case type")
		return
	}

	appt := models.Appointment{
		ID:          uuid.New(),
		ClientName:  input.ClientName,
		CaseType:    caseType,
		Date:        input.Date,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	// Blank optional fields stay absent; blank notes get the placeholder.
	if input.ClientPhone != nil && *input.ClientPhone != "" {
		if !utils.ValidatePhone(*input.ClientPhone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		appt.ClientPhone = *input.ClientPhone
	}
	if input.FileNumber != nil && *input.FileNumber != "" {
		appt.FileNumber = *input.FileNumber
	}
	if appt.Description == "" {
		appt.Description = models.DefaultDescription
	}

	err := config.Store.Update(func(appts []models.Appointment) []models.Appointment {
		return append(appts, appt)
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetAppointments returns the derived view for the requested tab, search
// query, category filter and selected date.
func GetAppointments(c *gin.Context) {
	sel := services.Selection{
		Tab:            services.Tab(c.DefaultQuery("tab", string(services.TabDashboard))),
		SearchQuery:    c.Query("search"),
		FilterCategory: c.DefaultQuery("filter", services.FilterAll),
	}

	switch sel.Tab {
	case services.TabDashboard, services.TabCalendar, services.TabHistory:
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown tab")
		return
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		sel.SelectedDate = &date
	}

	appts := services.FilterAndSort(config.Store.LoadAppointments(), sel, time.Now())
	c.JSON(http.StatusOK, appts)
}

// GetAppointment retrieves a single appointment by ID
func GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	for _, appt := range config.Store.LoadAppointments() {
		if appt.ID == id {
			c.JSON(http.StatusOK, appt)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
}

// UpdateAppointment edits an appointment in place, preserving its ID and
// creation time.
func UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CaseType != nil && !models.CaseType(*input.CaseType).Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown case type")
		return
	}
	if input.ClientPhone != nil && *input.ClientPhone != "" && !utils.ValidatePhone(*input.ClientPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	var updated *models.Appointment
	err = config.Store.Update(func(appts []models.Appointment) []models.Appointment {
		for i := range appts {
			if appts[i].ID != id {
				continue
			}
			if input.ClientName != nil && *input.ClientName != "" {
				appts[i].ClientName = *input.ClientName
			}
			if input.ClientPhone != nil {
				appts[i].ClientPhone = *input.ClientPhone
			}
			if input.FileNumber != nil {
				appts[i].FileNumber = *input.FileNumber
			}
			if input.CaseType != nil {
				appts[i].CaseType = models.CaseType(*input.CaseType)
			}
			if input.Date != nil {
				appts[i].Date = *input.Date
			}
			if input.Description != nil {
				appts[i].Description = *input.Description
				if appts[i].Description == "" {
					appts[i].Description = models.DefaultDescription
				}
			}
			updated = &appts[i]
			break
		}
		return appts
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}
	if updated == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAppointment permanently removes an appointment from the collection
func DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	found := false
	err = config.Store.Update(func(appts []models.Appointment) []models.Appointment {
		kept := appts[:0]
		for _, appt := range appts {
			if appt.ID == id {
				found = true
				continue
			}
			kept = append(kept, appt)
		}
		return kept
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted permanently"})
}

// ArchiveAppointment moves an appointment to the archive
func ArchiveAppointment(c *gin.Context) {
	setArchived(c, true, "Appointment archived")
}

// RestoreAppointment returns an archived appointment to the active list
func RestoreAppointment(c *gin.Context) {
	setArchived(c, false, "Appointment restored")
}

func setArchived(c *gin.Context, archived bool, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	found := false
	err = config.Store.Update(func(appts []models.Appointment) []models.Appointment {
		for i := range appts {
			if appts[i].ID == id {
				appts[i].Archived = archived
				found = true
				break
			}
		}
		return appts
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
