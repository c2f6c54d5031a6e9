package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// callerIDKey is the key used to store the authenticated caller account ID.
const callerIDKey = contextKey("callerID")

// WithCallerID returns a copy of ctx carrying the caller account ID.
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, callerIDKey, callerID)
}

// GetCallerIDFromContext retrieves the authenticated caller account ID from the request.
// It returns the ID and a boolean indicating if it was found.
func GetCallerIDFromContext(c *gin.Context) (string, bool) {
	callerID, ok := c.Request.Context().Value(callerIDKey).(string)
	if !ok || callerID == "" {
		return "", false
	}
	return callerID, true
}
