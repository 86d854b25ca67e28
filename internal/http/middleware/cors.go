package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS answers preflights with the permissive header set the mobile and web
// clients expect. The header values mirror the hosted-function deployment
// this service replaces.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
