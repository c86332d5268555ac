package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// NoStore marks responses as uncacheable. API responses carry patient data.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}

// PublicCache lets browsers and proxies cache GET responses for maxAge seconds.
func PublicCache(maxAge int) gin.HandlerFunc {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" {
			c.Header("Cache-Control", value)
		}
		c.Next()
	}
}
