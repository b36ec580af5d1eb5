package api

import (
	"context"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
)

// EntryUseCase определяет интерфейс сервиса ежедневных записей.
type EntryUseCase interface {
	// CanSubmit сообщает, может ли пользователь отправить запись за сегодня.
	// Проверка консультативная: источником истины остается ограничение
	// уникальности хранилища.
	CanSubmit(ctx context.Context, user *entities.User) (*dto.CanSubmitResponse, error)

	Submit(ctx context.Context, user *entities.User, req *dto.CreateEntryRequest) (*dto.EntryResponse, error)

	GetToday(ctx context.Context, user *entities.User) (*dto.EntryResponse, error)

	History(ctx context.Context, user *entities.User, period string, page, pageSize int) (*dto.EntryListResponse, error)
}
