package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSMiddleware allows credentialed requests from the root domain and its
// subdomains.
func CORSMiddleware(rootDomain string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == fmt.Sprintf("https://%s", rootDomain) ||
				originIsSubdomain(origin, rootDomain)
		},
		AllowMethods:     "GET,POST",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
	})
}

func originIsSubdomain(origin, rootDomain string) bool {
	suffix := "." + rootDomain
	if len(origin) < len("https://")+len(suffix) {
		return false
	}
	return origin[:len("https://")] == "https://" &&
		origin[len(origin)-len(suffix):] == suffix
}
