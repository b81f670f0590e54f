package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lexschedule-backend/config"
	"lexschedule-backend/controllers"
	"lexschedule-backend/services"
)

// Deps carries the long-lived services the handlers need.
type Deps struct {
	Feed      *services.FeedNotifier
	Notifier  services.Notifier
	Reminders *services.ReminderService
	Cache     *services.AssetCache
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	settings := &controllers.SettingsController{Notifier: deps.Notifier, Reminders: deps.Reminders}
	notifications := &controllers.NotificationsController{Feed: deps.Feed}

	api := r.Group("/api")
	{
		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
			appointments.POST("/:id/archive", controllers.ArchiveAppointment)
			appointments.POST("/:id/restore", controllers.RestoreAppointment)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Backup and calendar interchange
		api.GET("/export/csv", controllers.ExportCSV)
		api.GET("/export/calendar", controllers.ExportCalendar)
		api.POST("/import/csv", controllers.ImportCSV)

		// Settings routes
		api.GET("/settings", settings.GetSettings)
		api.PUT("/settings/notifications", settings.UpdateNotifications)
		api.PUT("/settings/dark-mode", settings.UpdateDarkMode)
		api.PUT("/settings/commercial-mode", settings.UpdateCommercialMode)

		// Local notification center
		api.GET("/notifications", notifications.GetNotifications)
		api.DELETE("/notifications", notifications.ClearNotifications)
	}

	// Everything else is the app shell and its assets, served cache-first.
	r.NoRoute(controllers.ServeAssets(deps.Cache))

	return r
}
