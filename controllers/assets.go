package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lexschedule-backend/services"
)

// ServeAssets routes every unmatched GET through the offline cache policy:
// cache-first, network fallback, and the cached shell for navigations that
// cannot reach the network.
func ServeAssets(cache *services.AssetCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Status(http.StatusNotFound)
			return
		}

		navigation := strings.Contains(c.GetHeader("Accept"), "text/html")
		resp, err := cache.Fetch(c.Request.Context(), c.Request.URL.Path, navigation)
		if err != nil {
			c.Status(http.StatusBadGateway)
			return
		}
		c.Data(resp.Status, resp.ContentType, resp.Body)
	}
}
