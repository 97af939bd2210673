package middleware

import (
	"log"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware keeps a panicking handler from taking the process down.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				utils.TrackError("panic", "handler")
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
