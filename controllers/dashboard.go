package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lexschedule-backend/config"
	"lexschedule-backend/models"
	"lexschedule-backend/utils"
)

type DashboardOverview struct {
	TotalActive    int                 `json:"totalActive"`
	TotalArchived  int                 `json:"totalArchived"`
	TodaySessions  int                 `json:"todaySessions"`
	UpcomingIn24h  int                 `json:"upcomingIn24h"`
	ThisWeek       int                 `json:"thisWeek"`
	NextSession    *models.Appointment `json:"nextSession,omitempty"`
	CaseTypeCounts map[string]int      `json:"caseTypeCounts"`
}

// GetDashboardOverview summarizes the collection for the home screen.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	weekStart := utils.StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	overview := DashboardOverview{CaseTypeCounts: make(map[string]int)}

	for _, appt := range config.Store.LoadAppointments() {
		if appt.Archived {
			overview.TotalArchived++
			continue
		}
		overview.TotalActive++
		overview.CaseTypeCounts[string(appt.CaseType)]++

		if utils.SameDay(now, appt.Date) {
			overview.TodaySessions++
		}
		if appt.Date.After(now) && !appt.Date.After(now.Add(24*time.Hour)) {
			overview.UpcomingIn24h++
		}
		if !appt.Date.Before(weekStart) && appt.Date.Before(weekEnd) {
			overview.ThisWeek++
		}
		if appt.Date.After(now) {
			if overview.NextSession == nil || appt.Date.Before(overview.NextSession.Date) {
				next := appt
				overview.NextSession = &next
			}
		}
	}

	c.JSON(http.StatusOK, overview)
}
