// Package services определяет интерфейсы внешних сервисов.
package services

import (
	"context"

	"leisurelog/internal/tracker/domain/entities"
)

// Session представляет сессию, выданную провайдером идентификации.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
	Identity     entities.Identity
}

// IdentityGateway определяет интерфейс внешнего провайдера идентификации.
// Криптография выпуска и проверки токенов полностью делегирована провайдеру.
type IdentityGateway interface {
	// SendOTP запрашивает отправку одноразового кода на email.
	SendOTP(ctx context.Context, email string) error

	// VerifyOTP обменивает email и код на сессию.
	// Возвращает entities.ErrInvalidOTP при неверном коде.
	VerifyOTP(ctx context.Context, email, code string) (*Session, error)

	// ResolveToken проверяет access токен и возвращает идентичность.
	// Транспортные ошибки трактуются как entities.ErrInvalidToken.
	ResolveToken(ctx context.Context, accessToken string) (*entities.Identity, error)

	// RefreshSession обменивает refresh токен на новую сессию.
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}
