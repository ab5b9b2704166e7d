package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/giftfinder-api/utils"
)

// RequestLogger logs every request once it has been handled.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.LogAPIRequest(c.Request.Method, c.Request.URL.Path, GetUserID(c), c.Writer.Status(), time.Since(start))
	}
}
