package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/denis-rim/node-auth/internal/domain"
)

const (
	// AccessTokenCookie is a browser-session cookie: no explicit expiry, it
	// dies when the browser closes. RefreshTokenCookie carries the long
	// lifetime. Token expiry lives entirely here, not in the JWT claims.
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// setAuthCookies sets both token cookies on the response
func setAuthCookies(c *fiber.Ctx, pair *domain.TokenPair, cookieDomain string, refreshTTL time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		Domain:   cookieDomain,
		HTTPOnly: true,
		Secure:   true,
		Expires:  time.Now().Add(refreshTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		Domain:   cookieDomain,
		HTTPOnly: true,
		Secure:   true,
	})
}

// clearAuthCookies expires both token cookies
func clearAuthCookies(c *fiber.Ctx, cookieDomain string) {
	for _, name := range []string{RefreshTokenCookie, AccessTokenCookie} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   cookieDomain,
			HTTPOnly: true,
			Secure:   true,
			Expires:  time.Unix(0, 0),
		})
	}
}

// connectionInfo extracts the client connection metadata recorded on sessions
func connectionInfo(c *fiber.Ctx) domain.ConnectionInfo {
	return domain.ConnectionInfo{
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

func statusResponse(status string) fiber.Map {
	return fiber.Map{"data": fiber.Map{"status": status}}
}
