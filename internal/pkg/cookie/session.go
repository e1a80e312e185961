package cookie

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
)

const SessionCookieName = "rental_session"

// Session cookie lifetime in seconds. Long enough to survive the round
// trip through the payment provider with plenty of slack.
const sessionMaxAge = 24 * 60 * 60

// EnsureSessionID returns the caller's rental session id, minting and
// setting a new one when the request carries none. The id only keys the
// pending selection slot; it grants nothing by itself.
func EnsureSessionID(c *gin.Context, cfg config.CookieConfig) string {
	if id, err := c.Cookie(SessionCookieName); err == nil && id != "" {
		return id
	}

	id := uuid.NewString()
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(
		SessionCookieName,
		id,
		sessionMaxAge,
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
	return id
}

// GetSessionID returns the rental session id without minting one, for
// endpoints where a missing session already means a failed flow.
func GetSessionID(c *gin.Context) string {
	id, _ := c.Cookie(SessionCookieName)
	return id
}
