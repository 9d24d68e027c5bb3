package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/denis-rim/node-auth/internal/domain"
	"github.com/denis-rim/node-auth/internal/service"
)

// UserKey is the fiber.Locals key the resolved user is stored under.
const UserKey = "user"

// ResolveUser resolves the current user from the auth cookies and stores it
// in fiber.Locals for downstream handlers. Resolution failure is not an
// error here: handlers that require a user treat a missing local as
// unauthenticated. When the refresh path rotated the tokens, both cookies
// are reset on the response.
func ResolveUser(resolver *service.Resolver, cookieDomain string, refreshTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("accessToken")
		refreshToken := c.Cookies("refreshToken")

		res, err := resolver.UserFromCookies(c.Context(), accessToken, refreshToken)
		if err != nil || res == nil {
			return c.Next()
		}

		if res.Rotated != nil {
			setRotatedCookies(c, res.Rotated, cookieDomain, refreshTTL)
		}

		c.Locals(UserKey, res.User)
		return c.Next()
	}
}

// CurrentUser returns the user stored by ResolveUser, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(UserKey).(*domain.User)
	return user
}

func setRotatedCookies(c *fiber.Ctx, pair *domain.TokenPair, cookieDomain string, refreshTTL time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Path:     "/",
		Domain:   cookieDomain,
		HTTPOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(refreshTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Path:     "/",
		Domain:   cookieDomain,
		HTTPOnly: true,
		Secure:   true,
	})
}
