package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKey is used for values stored in gin and request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey   = contextKey("logger")
	clientIDKey = contextKey("clientID")
)

// ClientIDHeader lets API consumers name themselves for analytics and rate limiting.
const ClientIDHeader = "X-Client-ID"

// ClientIdentityMiddleware stores an identifier for the caller: the X-Client-ID header
// when present, the client IP otherwise.
func ClientIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := strings.TrimSpace(c.GetHeader(ClientIDHeader))
		if clientID == "" || len(clientID) > 128 {
			clientID = c.ClientIP()
		}
		c.Set(string(clientIDKey), clientID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIDKey, clientID))
		c.Next()
	}
}

// GetClientIDFromContext retrieves the caller identifier set by ClientIdentityMiddleware.
func GetClientIDFromContext(c *gin.Context) (string, bool) {
	clientIDVal, exists := c.Get(string(clientIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(clientIDKey).(string); ok {
			return v, true
		}
		return "", false
	}

	clientID, ok := clientIDVal.(string)
	return clientID, ok
}
