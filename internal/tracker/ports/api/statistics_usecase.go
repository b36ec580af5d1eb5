package api

import (
	"context"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
)

// StatisticsUseCase определяет интерфейс движка статистики.
type StatisticsUseCase interface {
	Overview(ctx context.Context, user *entities.User, period string) (*dto.OverallStats, error)

	Trends(ctx context.Context, user *entities.User, days int) (*dto.TrendData, error)

	// Reset атомарно удаляет все записи пользователя и очищает подсказку
	// last_entry_date.
	Reset(ctx context.Context, user *entities.User) error
}

// AdminUseCase определяет интерфейс межпользовательского агрегатора.
type AdminUseCase interface {
	AllUserStats(ctx context.Context) ([]*dto.UserStatsResponse, error)

	NotesCorpus(ctx context.Context) (*dto.WordCloudResponse, error)
}
