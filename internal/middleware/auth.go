package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rideshare/internal/auth"
	"rideshare/internal/domain"
)

// Context keys set by AuthMiddleware.
const (
	ContextSubjectKey = "auth.subject"
	ContextRoleKey    = "auth.role"
)

// AuthMiddleware verifies the bearer token and stores the subject id and role
// in the request context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		subjectID, role, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextSubjectKey, subjectID)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role does not match.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, exists := c.Get(ContextRoleKey)
		if !exists || got.(domain.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// Subject returns the authenticated subject id from the context.
func Subject(c *gin.Context) string {
	if v, exists := c.Get(ContextSubjectKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Role returns the authenticated role from the context.
func Role(c *gin.Context) domain.Role {
	if v, exists := c.Get(ContextRoleKey); exists {
		if r, ok := v.(domain.Role); ok {
			return r
		}
	}
	return ""
}
