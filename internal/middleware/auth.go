package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/session"
)

const sessionUserKey = "session_user"

// SessionMiddleware resolves the session cookie to the stored user stub and
// attaches it to the request context. Anonymous requests pass through; the
// guards below enforce authentication.
func SessionMiddleware(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if user, err := store.Get(token); err == nil {
				c.Set(sessionUserKey, *user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the session user stub attached by SessionMiddleware.
func CurrentUser(c *gin.Context) (models.SessionUser, bool) {
	v, ok := c.Get(sessionUserKey)
	if !ok {
		return models.SessionUser{}, false
	}
	user, ok := v.(models.SessionUser)
	return user, ok
}

// RequireLogin rejects anonymous requests with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.Next()
	}
}

// RequireRoleAtLeast rejects requests whose session role is below min:
// 401 when anonymous, 403 when authenticated but under-privileged.
func RequireRoleAtLeast(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		if !user.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}
