package middleware

import (
	"net/http"

	"dessert-cart/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "cart_session"
	sessionKey    = "session"
)

// Session attaches the caller's cart session to the context, creating one when
// the request carries no live session. The cookie is re-issued on every request
// so its expiry follows the session's idle timeout.
func Session(registry *session.Registry, maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id uuid.UUID
		if raw, err := c.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(raw); err == nil {
				id = parsed
			}
		}

		sess, _ := registry.GetOrCreate(id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID.String(), maxAge, "/", "", false, true)

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session stored by the Session middleware.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}
