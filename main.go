package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lexschedule-backend/config"
	"lexschedule-backend/routes"
	"lexschedule-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	if err := config.LoadConfig(); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	config.ConnectStore()
}

func main() {
	feed := services.NewFeedNotifier()
	notifier := services.NewFanoutNotifier(feed, services.NewTwilioNotifier(config.App))

	reminders := services.NewReminderService(config.Store, notifier)
	reminders.StartScheduler()
	defer reminders.Stop()

	cache := services.NewAssetCache(config.App.DataDir, config.App.PublicDir, config.App.CacheGeneration, config.App.AssetManifest())
	go func() {
		cache.Install(context.Background())
		if err := cache.Activate(); err != nil {
			log.Printf("Cache activation failed: %v", err)
		}
	}()

	r := routes.SetupRouter(routes.Deps{
		Feed:      feed,
		Notifier:  notifier,
		Reminders: reminders,
		Cache:     cache,
	})
	printRoutes(r)
	r.Run(":" + config.App.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
