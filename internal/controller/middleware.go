package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exam_scheduler/internal/service"
)

const (
	sessionCookie = "token"
	principalKey  = "principal_id"
)

// TeacherAuth resolves the session cookie to a principal id and aborts with
// 401 when there is none. Handlers behind it read the principal from the
// context, never from the URL.
func TeacherAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		principal, err := auth.PrincipalID(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if principal == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}
