// Package api определяет интерфейсы уровня приложения.
package api

import (
	"context"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
)

// AuthUseCase определяет интерфейс сервиса аутентификации.
type AuthUseCase interface {
	SendOTP(ctx context.Context, email string) error

	// VerifyOTP проверяет одноразовый код у провайдера идентификации и
	// лениво создает локального пользователя при первом успешном входе.
	VerifyOTP(ctx context.Context, email, otp string) (*dto.TokenResponse, error)

	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)

	// ResolveUser сопоставляет bearer токен с локальным пользователем.
	ResolveUser(ctx context.Context, accessToken string) (*entities.User, error)
}
