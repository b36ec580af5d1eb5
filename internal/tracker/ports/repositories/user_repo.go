// Package repositories определяет интерфейсы для операций сохранения данных.
package repositories

import (
	"context"
	"time"

	"leisurelog/internal/tracker/domain/entities"
)

// UserRepository определяет интерфейс для операций с пользователями.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByProviderID(ctx context.Context, providerUserID string) (*entities.User, error)

	// SetLastEntryDate обновляет вспомогательную подсказку last_entry_date.
	// nil очищает подсказку.
	SetLastEntryDate(ctx context.Context, userID string, date *time.Time) error

	// ListAll возвращает всех пользователей, новые первыми.
	ListAll(ctx context.Context) ([]*entities.User, error)
}
