package entities

import (
	"errors"
	"time"
)

// Определяем ошибки домена пользователя.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this provider id or email already exists")
	ErrInvalidEmail = errors.New("invalid email format")
)

// User представляет пользователя, связанного с внешним провайдером идентификации.
// LastEntryDate - вспомогательная подсказка о дате последней сегодняшней записи;
// она никогда не используется для проверки уникальности записей.
type User struct {
	ID             string
	ProviderUserID string
	Email          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastEntryDate  *time.Time
}
