package response

import "github.com/gin-gonic/gin"

// Success writes payload with "success": true added at the top level.
// The front end expects flat envelopes like {"success": true, "ads": [...]}.
func Success(c *gin.Context, statusCode int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(statusCode, payload)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
