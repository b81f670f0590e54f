package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexschedule-backend/config"
	"lexschedule-backend/models"
	"lexschedule-backend/services"
	"lexschedule-backend/utils"
)

// SettingsController wires the preference toggles to the reminder scheduler
// and its delivery channels.
type SettingsController struct {
	Notifier  services.Notifier
	Reminders *services.ReminderService
}

type toggleInput struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetSettings returns the persisted preferences plus the case groups visible
// under the current commercial-mode setting.
func (s *SettingsController) GetSettings(c *gin.Context) {
	prefs := config.Store.Preferences()
	c.JSON(http.StatusOK, gin.H{
		"preferences": prefs,
		"caseGroups":  models.VisibleCaseGroups(prefs.CommercialMode),
	})
}

// UpdateNotifications flips the notification toggle. Enabling is refused when
// no delivery channel is ready, leaving the stored state unchanged so nothing
// is silently skipped as notified.
func (s *SettingsController) UpdateNotifications(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if *input.Enabled && (s.Notifier == nil || !s.Notifier.Ready()) {
		utils.RespondWithError(c, http.StatusConflict, "Notifications are not available on this device")
		return
	}

	if err := config.Store.SetNotificationsEnabled(*input.Enabled); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save preference")
		return
	}

	// An immediate pass catches appointments already inside the 24h window.
	if *input.Enabled && s.Reminders != nil {
		s.Reminders.CheckReminders()
	}

	c.JSON(http.StatusOK, gin.H{"notificationsEnabled": *input.Enabled})
}

// UpdateDarkMode flips the theme flag.
func (s *SettingsController) UpdateDarkMode(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := config.Store.SetDarkMode(*input.Enabled); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save preference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"darkMode": *input.Enabled})
}

// UpdateCommercialMode toggles the commercial case group on or off.
func (s *SettingsController) UpdateCommercialMode(c *gin.Context) {
	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := config.Store.SetCommercialMode(*input.Enabled); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save preference")
		return
	}
	c.JSON(http.StatusOK, gin.H{"commercialMode": *input.Enabled})
}
