package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/internal/tracker/ports/repositories"
	"leisurelog/pkg/logger"
)

// Границы окна трендов в днях.
const (
	MinTrendDays = 7
	MaxTrendDays = 365
)

// Константы для логирования.
const (
	msgComputingOverview = "computing statistics overview"
	msgComputingTrends   = "computing trend series"
	msgResettingData     = "resetting all user data"
	msgDataReset         = "user data reset"

	msgErrLoadEntries = "failed to load entries for statistics"
	msgErrResetData   = "failed to reset user data"
)

// StatisticsUseCaseImpl реализует интерфейс api.StatisticsUseCase.
type StatisticsUseCaseImpl struct {
	entryRepo repositories.EntryRepository
	now       func() time.Time
}

// NewStatisticsUseCase создает новый движок статистики.
func NewStatisticsUseCase(entryRepo repositories.EntryRepository, now func() time.Time) api.StatisticsUseCase {
	if now == nil {
		now = time.Now
	}
	return &StatisticsUseCaseImpl{
		entryRepo: entryRepo,
		now:       now,
	}
}

// Overview вычисляет сводную статистику по отфильтрованному набору записей.
// Пустой набор - определенный результат со всеми нулями, а не ошибка:
// деления на ноль не происходит.
func (u *StatisticsUseCaseImpl) Overview(ctx context.Context, user *entities.User, period string) (*dto.OverallStats, error) {
	log := logger.Log(ctx).With(zap.String("method", "Overview"), zap.String("user_id", user.ID))
	log.Debug(ctx, msgComputingOverview, zap.String("period", period))

	since, err := periodStart(period, dateOnly(u.now()))
	if err != nil {
		return nil, err
	}

	entries, err := u.entryRepo.ListByUserSince(ctx, user.ID, since, false)
	if err != nil {
		log.Error(ctx, msgErrLoadEntries, zap.Error(err))
		return nil, fmt.Errorf("loading entries for overview: %w", err)
	}

	if len(entries) == 0 {
		return &dto.OverallStats{Period: period}, nil
	}

	count := len(entries)
	var casualTotal, seriousTotal, projectTotal, grandTotal float64
	for _, entry := range entries {
		casualTotal += entry.CasualHours
		seriousTotal += entry.SeriousHours
		projectTotal += entry.ProjectHours
		grandTotal += entry.TotalHours
	}

	return &dto.OverallStats{
		CasualLeisure:     categoryStats(casualTotal, count),
		SeriousLeisure:    categoryStats(seriousTotal, count),
		ProjectLeisure:    categoryStats(projectTotal, count),
		TotalEntries:      count,
		TotalHours:        grandTotal,
		AverageTotalHours: round2(grandTotal / float64(count)),
		Period:            period,
	}, nil
}

// Trends строит данные для графиков: записи за последние days дней
// по возрастанию даты, без заполнения пропущенных дат.
func (u *StatisticsUseCaseImpl) Trends(ctx context.Context, user *entities.User, days int) (*dto.TrendData, error) {
	log := logger.Log(ctx).With(zap.String("method", "Trends"), zap.String("user_id", user.ID))
	log.Debug(ctx, msgComputingTrends, zap.Int("days", days))

	if days < MinTrendDays || days > MaxTrendDays {
		return nil, entities.ErrInvalidTrendDays
	}

	since := dateOnly(u.now()).AddDate(0, 0, -days)

	entries, err := u.entryRepo.ListByUserSince(ctx, user.ID, &since, true)
	if err != nil {
		log.Error(ctx, msgErrLoadEntries, zap.Error(err))
		return nil, fmt.Errorf("loading entries for trends: %w", err)
	}

	trend := &dto.TrendData{
		Dates:        make([]string, 0, len(entries)),
		CasualHours:  make([]float64, 0, len(entries)),
		SeriousHours: make([]float64, 0, len(entries)),
		ProjectHours: make([]float64, 0, len(entries)),
		TotalHours:   make([]float64, 0, len(entries)),
	}

	for _, entry := range entries {
		trend.Dates = append(trend.Dates, entry.EntryDate.Format(entities.EntryDateFormat))
		trend.CasualHours = append(trend.CasualHours, entry.CasualHours)
		trend.SeriousHours = append(trend.SeriousHours, entry.SeriousHours)
		trend.ProjectHours = append(trend.ProjectHours, entry.ProjectHours)
		trend.TotalHours = append(trend.TotalHours, entry.TotalHours)
	}

	return trend, nil
}

// Reset атомарно удаляет все записи пользователя и очищает подсказку
// last_entry_date. При ошибке состояние до сброса остается нетронутым.
func (u *StatisticsUseCaseImpl) Reset(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", "Reset"), zap.String("user_id", user.ID))
	log.Info(ctx, msgResettingData)

	if err := u.entryRepo.ResetUserData(ctx, user.ID); err != nil {
		log.Error(ctx, msgErrResetData, zap.Error(err))
		return fmt.Errorf("resetting user data: %w", err)
	}

	log.Info(ctx, msgDataReset)
	return nil
}

// categoryStats собирает статистику одной категории.
func categoryStats(total float64, count int) dto.CategoryStats {
	return dto.CategoryStats{
		TotalHours:   total,
		AverageHours: round2(total / float64(count)),
		EntryCount:   count,
	}
}

// round2 округляет до двух знаков по правилу "половина от нуля".
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
