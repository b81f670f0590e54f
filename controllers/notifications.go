package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexschedule-backend/services"
)

// NotificationsController exposes the in-app notification feed the shell
// polls; it stands in for a platform notification center.
type NotificationsController struct {
	Feed *services.FeedNotifier
}

// GetNotifications lists delivered reminders, oldest first.
func (n *NotificationsController) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, n.Feed.Delivered())
}

// ClearNotifications dismisses the whole feed.
func (n *NotificationsController) ClearNotifications(c *gin.Context) {
	n.Feed.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
