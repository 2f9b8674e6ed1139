package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/session"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session into a user context for every
// request. Anonymous requests get a zero context, never an error.
func UserContextMiddleware(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	userID, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok || userID == 0 {
		c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	userCtx := usercontext.UserContext{
		UserID:     userID,
		IsLoggedIn: true,
	}
	// Profile fields are cached in the session at login; fall back to the
	// database when a stale session predates the cache.
	if email, ok := sess.Get("user_email").(string); ok && email != "" {
		userCtx.Email = email
		if first, ok := sess.Get("user_first_name").(string); ok {
			userCtx.FirstName = first
		}
		if phone, ok := sess.Get("user_phone").(string); ok {
			userCtx.Phone = phone
		}
	} else if user, err := repository.GetGlobalRepositories().User.GetByID(userID); err == nil {
		userCtx.Email = user.Email
		userCtx.FirstName = user.FirstName
		userCtx.Phone = user.Phone
	}

	c.Locals("USER_CONTEXT", userCtx)
	c.Locals(usercontext.KeyFromProtected, true)
	c.Locals(usercontext.KeyUserID, userID)
	return c.Next()
}
