package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSHeaders are the permissive cross-origin headers applied to every
// response. The admin gateway handlers rely on these being present on
// error responses as well.
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
}

// ApplyCORSHeaders writes the shared CORS headers onto the response
func ApplyCORSHeaders(c *gin.Context) {
	for key, value := range CORSHeaders {
		c.Header(key, value)
	}
}

// CORS middleware applies permissive cross-origin headers and short-circuits
// preflight requests
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		ApplyCORSHeaders(c)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
