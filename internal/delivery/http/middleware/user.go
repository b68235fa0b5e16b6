package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDHeader - заголовок с идентификатором пользователя, выставляется gateway
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

const maxUserIDLength = 128

// User - кладёт идентификатор пользователя из заголовка в locals.
// Аутентификация выполняется до сервиса, здесь заголовок только читается.
func User() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(UserIDHeader))
		if len(userID) > maxUserIDLength {
			userID = ""
		}
		if userID != "" {
			c.Locals(userIDKey, userID)
		}
		return c.Next()
	}
}

// UserID - идентификатор пользователя текущего запроса, пустой для анонимного
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(userIDKey).(string); ok {
		return v
	}
	return ""
}
