package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/pkg/logger"
)

// UserLocalKey - ключ Locals с аутентифицированным пользователем.
const UserLocalKey = "user"

// LogAuthMiddleware - сообщение входа в промежуточное ПО аутентификации.
const LogAuthMiddleware = "auth middleware"

const bearerPrefix = "Bearer "

// NewAuthMiddleware создает промежуточное ПО проверки bearer токена.
// Разрешенный пользователь сохраняется в Locals под ключом UserLocalKey;
// причина отказа берется из доменных ошибок аутентификации.
func NewAuthMiddleware(authUseCase api.AuthUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token, err := bearerToken(ctx.Get("Authorization"))
		if err != nil {
			log.Debug(requestCtx, "request rejected", zap.Error(err))
			return sendUnauthorized(ctx, err)
		}

		user, err := authUseCase.ResolveUser(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, "token rejected", zap.Error(err))
			if errors.Is(err, entities.ErrUserNotFound) {
				return sendUnauthorized(ctx, entities.ErrUserNotFound)
			}
			return sendUnauthorized(ctx, entities.ErrInvalidToken)
		}

		ctx.Locals(UserLocalKey, user)

		return ctx.Next()
	}
}

// bearerToken извлекает токен из заголовка Authorization.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", entities.ErrMissingAuthHeader
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", entities.ErrInvalidTokenFormat
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", entities.ErrInvalidTokenFormat
	}
	return token, nil
}

// UserFromCtx извлекает аутентифицированного пользователя из Locals.
func UserFromCtx(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(UserLocalKey).(*entities.User)
	return user, ok
}

// sendUnauthorized отправляет ответ 401 с доменной причиной отказа.
func sendUnauthorized(ctx fiber.Ctx, reason error) error {
	if err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": reason.Error(),
	}); err != nil {
		return fmt.Errorf("error sending unauthorized response: %w", err)
	}
	return nil
}
