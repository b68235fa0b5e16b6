package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const defaultAllowOrigins = "http://localhost:3000,http://localhost:5173"

// CORS - middleware для настройки Cross-Origin Resource Sharing.
// allowOrigins - список через запятую, пустой означает локальные dev-адреса.
func CORS(allowOrigins string) fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = defaultAllowOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Content-Type,Accept,Accept-Language,Authorization," + UserIDHeader,
		AllowCredentials: allowOrigins != "*",
	})
}
