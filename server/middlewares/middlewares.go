package middlewares

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserKey holds the logged-in user's id in the session cookie.
	SessionUserKey = "user_id"
	// SessionAuthModeKey tells the auth panel which form to show.
	SessionAuthModeKey = "auth_mode"
	// SessionNextURLKey is the internal path to land on after login.
	SessionNextURLKey = "next_url"
)

// LoginRequired guards routes that need an authenticated user. Anonymous
// requests are bounced to / with the auth panel opened in login mode and the
// attempted path remembered for the post-login redirect.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(SessionUserKey) != nil {
			c.Next()
			return
		}

		session.Set(SessionAuthModeKey, "login")
		if c.Request.Method == http.MethodGet {
			session.Set(SessionNextURLKey, c.Request.URL.RequestURI())
		}
		session.Save()
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

// CurrentUserId reads the logged-in user's id, 0 when anonymous.
func CurrentUserId(c *gin.Context) uint {
	v := sessions.Default(c).Get(SessionUserKey)
	if v == nil {
		return 0
	}
	id, ok := v.(uint)
	if !ok {
		return 0
	}
	return id
}
