package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"ticket_system/internal/service" // Service failure taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// statusForRead maps a service failure on a read endpoint. Not-found on
// reads surfaces as 500, preserving the original API behavior; the tests
// pin this choice.
func statusForRead(err error) int {
	if service.KindOf(err) == service.KindUnauthorized {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// statusForWrite maps a service failure on a write endpoint: bad
// credentials are 401, internal failures 500, everything else (validation,
// conflict, write-path not-found) 400.
func statusForWrite(err error) int {
	switch service.KindOf(err) {
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondError emits the uniform error envelope. Internal failures are
// logged and masked; typed failures carry their message to the client.
func respondError(c *gin.Context, status int, err error) {
	if service.KindOf(err) == service.KindInternal {
		// Log the real cause, never send it to the client
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err.Error(),
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// principalID returns the authenticated user ID stored by the JWT middleware
func principalID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Set by the auth middleware
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parseID parses a numeric path parameter; failures classify as not-found
// so the per-path status mapping applies
func parseID(c *gin.Context, name, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, service.NotFound(message)
	}
	return uint(id), nil
}
