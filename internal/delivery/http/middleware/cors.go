package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// allowOrigins - список через запятую, "*" разрешает все источники.
func CORS(allowOrigins string) fiber.Handler {
	if strings.TrimSpace(allowOrigins) == "" {
		allowOrigins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Accept-Language,Authorization,X-Request-ID",
		// с "*" браузеры не принимают credentials
		AllowCredentials: allowOrigins != "*",
		ExposeHeaders:    fiber.HeaderXRequestID,
	})
}
