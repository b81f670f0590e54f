package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes a JSON error body and aborts the request. All
// handler failures funnel through here so the client always gets the same
// shape back.
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
