package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/pkg/logger"
)

// NewRecoveryMiddleware перехватывает панику в обработчиках и превращает
// ее в ответ 500, не роняя процесс.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			requestCtx := ctx.Context()
			logger.Log(requestCtx).Error(requestCtx, "Recovered from panic",
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.String("method", ctx.Method()),
				zap.String("path", ctx.Path()),
				zap.String("stack", string(debug.Stack())),
			)

			if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			}); err != nil {
				logger.Log(requestCtx).Error(requestCtx, "Failed to send error response after panic", zap.Error(err))
			}
		}()

		return ctx.Next()
	}
}
