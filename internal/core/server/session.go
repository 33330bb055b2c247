package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// sessionLocalKey is the fiber locals key under which the session id is stored.
const sessionLocalKey = "sessionid"

// sessionCookieMaxAge bounds the session cookie lifetime. Server-side
// state expires separately via the store TTL.
const sessionCookieMaxAge = 365 * 24 * time.Hour

// NewSessionMiddleware returns a middleware that reads the session
// cookie, issuing a fresh uuid when no cookie is present, and exposes
// the session id to handlers via locals.
func NewSessionMiddleware(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    sid,
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				MaxAge:   int(sessionCookieMaxAge.Seconds()),
			})
		}

		c.Locals(sessionLocalKey, sid)
		return c.Next()
	}
}

// SessionID returns the request's session id. Empty when the session
// middleware is not installed.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionLocalKey).(string)
	return sid
}

// RayID returns the request id attached by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rid, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rid
}
