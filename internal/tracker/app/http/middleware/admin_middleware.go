package middleware

import (
	"crypto/subtle"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/pkg/logger"
)

// HeaderAdminPassword - имя заголовка с административным паролем.
const HeaderAdminPassword = "X-Admin-Password" // #nosec G101 - header name, not a credential

// LogAdminMiddleware - сообщение входа в промежуточное ПО администратора.
const LogAdminMiddleware = "admin middleware"

// NewAdminMiddleware создает промежуточное ПО проверки административного доступа.
// Пароль сравнивается за постоянное время.
func NewAdminMiddleware(password string) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "admin"))
		log.Debug(requestCtx, LogAdminMiddleware)

		provided := ctx.Get(HeaderAdminPassword)
		if password == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(password)) != 1 {
			log.Warn(requestCtx, entities.ErrAdminForbidden.Error(), zap.String("ip", ctx.IP()))
			if err := ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": entities.ErrAdminForbidden.Error(),
			}); err != nil {
				return fmt.Errorf("error sending forbidden response: %w", err)
			}
			return nil
		}

		return ctx.Next()
	}
}
