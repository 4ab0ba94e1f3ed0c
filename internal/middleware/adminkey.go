// Package middleware holds shared gin middleware for the admin surface.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/hauspet-lab/hauspet-intake/internal/core/errors"
)

// AdminKey guards admin endpoints with a shared secret, accepted either as
// the x-admin-key header or the adminKey query parameter. Every rejection
// returns the same generic body: callers can never distinguish a wrong key
// from a missing one, or probe which resources exist.
func AdminKey(configuredKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("x-admin-key")
		if provided == "" {
			provided = c.Query("adminKey")
		}

		if !KeyMatches(provided, configuredKey) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				Error:   httperr.CodeUnauthorized,
				Message: "Unauthorized - Admin access required",
			})
			return
		}

		c.Next()
	}
}

// KeyMatches compares a provided admin key in constant time. An empty
// configured key disables the admin surface entirely: nothing matches.
func KeyMatches(provided, configured string) bool {
	if configured == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) == 1
}
