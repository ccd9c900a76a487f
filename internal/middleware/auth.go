package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/localnerve/jam-build-appstore/internal/types"
)

const (
	// SessionCookie carries the Authorizer member session
	SessionCookie = "cookie_session"
	// GuestHeader carries a guest identity
	GuestHeader = "X-Guest-Id"

	callerLocal = "caller"
)

// Identify resolves the caller of every request. A valid member session sets the user,
// the guest header sets the guest, and neither leaves the caller anonymous.
// A nil validator disables member sessions.
func Identify(validator services.SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var caller services.Caller

		if session := c.Cookies(SessionCookie); session != "" && validator != nil {
			userID, err := validator.ValidateSession(session)
			if err != nil {
				return &types.CustomError{
					Code:    fiber.StatusForbidden,
					Message: fmt.Sprintf("Invalid session: %v", err),
					Type:    "authorization.user",
				}
			}
			caller.UserID = userID
		}

		if guest := c.Get(GuestHeader); guest != "" {
			if _, err := uuid.Parse(guest); err != nil {
				return &types.CustomError{
					Code:    fiber.StatusBadRequest,
					Message: fmt.Sprintf("%s must be a UUID", GuestHeader),
					Type:    "authorization.guest",
				}
			}
			caller.GuestID = guest
		}

		c.Locals(callerLocal, caller)
		return c.Next()
	}
}

// RequireSubject rejects anonymous callers. Must run after Identify.
func RequireSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CallerFrom(c).IsAnonymous() {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Authorizer cookie %q or %s header required", SessionCookie, GuestHeader),
				Type:    "authorization.subject",
			}
		}
		return c.Next()
	}
}

// CallerFrom returns the caller resolved by Identify, or an anonymous caller
func CallerFrom(c *fiber.Ctx) services.Caller {
	if caller, ok := c.Locals(callerLocal).(services.Caller); ok {
		return caller
	}
	return services.Caller{}
}
