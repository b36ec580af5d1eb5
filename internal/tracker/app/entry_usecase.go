// Package app содержит реализации сценариев уровня приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/internal/tracker/ports/repositories"
	"leisurelog/pkg/logger"
)

// Периоды фильтрации истории и статистики.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"

	daysInWeek  = 7
	daysInMonth = 30
)

// Границы пагинации истории.
const (
	MinPageSize = 1
	MaxPageSize = 100
)

// Константы для логирования.
const (
	msgCanSubmitCheck    = "checking whether user can submit today"
	msgSubmittingEntry   = "submitting daily entry"
	msgEntryCreated      = "daily entry created"
	msgDuplicateDate     = "entry already exists for date"
	msgInvalidSubmission = "invalid entry submission"
	msgListingHistory    = "listing entry history"

	msgErrFindEntry     = "failed to look up entry"
	msgErrCreateEntry   = "failed to create entry"
	msgErrUpdateHint    = "failed to update last entry date hint"
	msgErrListEntries   = "failed to list entries"
	reasonAlreadyExists = "You have already submitted an entry for today. Entries cannot be modified."
)

// EntryUseCaseImpl реализует интерфейс api.EntryUseCase.
type EntryUseCaseImpl struct {
	entryRepo repositories.EntryRepository
	userRepo  repositories.UserRepository
	now       func() time.Time
}

// NewEntryUseCase создает новый сервис ежедневных записей.
// nil now означает системное время; явная функция времени
// передается в тестах.
func NewEntryUseCase(
	entryRepo repositories.EntryRepository,
	userRepo repositories.UserRepository,
	now func() time.Time,
) api.EntryUseCase {
	if now == nil {
		now = time.Now
	}
	return &EntryUseCaseImpl{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		now:       now,
	}
}

// CanSubmit сообщает, может ли пользователь отправить запись за сегодня.
// Результат консультативный: гарантию уникальности дает только хранилище.
func (u *EntryUseCaseImpl) CanSubmit(ctx context.Context, user *entities.User) (*dto.CanSubmitResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "CanSubmit"), zap.String("user_id", user.ID))
	log.Debug(ctx, msgCanSubmitCheck)

	today := dateOnly(u.now())

	existing, err := u.entryRepo.FindByUserAndDate(ctx, user.ID, today)
	if err != nil {
		if errors.Is(err, entities.ErrEntryNotFound) {
			return &dto.CanSubmitResponse{CanSubmit: true}, nil
		}
		log.Error(ctx, msgErrFindEntry, zap.Error(err))
		return nil, fmt.Errorf("checking today entry: %w", err)
	}

	reason := reasonAlreadyExists
	return &dto.CanSubmitResponse{
		CanSubmit:     false,
		Reason:        &reason,
		ExistingEntry: toEntryResponse(existing),
	}, nil
}

// Submit валидирует и создает запись. Дата по умолчанию - сегодня;
// прошлые даты разрешены (ретроактивные записи), и правило "одна запись
// на дату" действует для каждой даты отдельно.
func (u *EntryUseCaseImpl) Submit(ctx context.Context, user *entities.User, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "Submit"), zap.String("user_id", user.ID))
	log.Debug(ctx, msgSubmittingEntry)

	today := dateOnly(u.now())

	entryDate := today
	if req.EntryDate != "" {
		parsed, err := time.ParseInLocation(entities.EntryDateFormat, req.EntryDate, time.UTC)
		if err != nil {
			log.Debug(ctx, msgInvalidSubmission, zap.String("entry_date", req.EntryDate))
			return nil, fmt.Errorf("parsing entry date: %w", entities.ErrInvalidEntryDate)
		}
		entryDate = parsed
	}

	if err := validateHours(req.CasualLeisureHours, req.SeriousLeisureHours, req.ProjectLeisureHours); err != nil {
		log.Debug(ctx, msgInvalidSubmission, zap.Error(err))
		return nil, err
	}

	total := req.CasualLeisureHours + req.SeriousLeisureHours + req.ProjectLeisureHours

	entry := &entities.Entry{
		UserID:       user.ID,
		EntryDate:    entryDate,
		CasualHours:  req.CasualLeisureHours,
		CasualNote:   normalizeNote(req.CasualLeisureNote),
		SeriousHours: req.SeriousLeisureHours,
		SeriousNote:  normalizeNote(req.SeriousLeisureNote),
		ProjectHours: req.ProjectLeisureHours,
		ProjectNote:  normalizeNote(req.ProjectLeisureNote),
		TotalHours:   total,
	}

	created, err := u.entryRepo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, entities.ErrEntryExists) {
			log.Debug(ctx, msgDuplicateDate, zap.Time("entry_date", entryDate))
			return nil, err
		}
		log.Error(ctx, msgErrCreateEntry, zap.Error(err))
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	// Подсказка last_entry_date обновляется только для сегодняшней записи;
	// ретроактивная запись за прошлую дату подсказку не трогает.
	if entryDate.Equal(today) {
		if err := u.userRepo.SetLastEntryDate(ctx, user.ID, &entryDate); err != nil {
			log.Error(ctx, msgErrUpdateHint, zap.Error(err))
			return nil, fmt.Errorf("updating last entry date: %w", err)
		}
	}

	log.Info(ctx, msgEntryCreated,
		zap.Time("entry_date", entryDate),
		zap.Float64("total_hours", created.TotalHours))

	return toEntryResponse(created), nil
}

// GetToday возвращает запись пользователя за сегодня.
func (u *EntryUseCaseImpl) GetToday(ctx context.Context, user *entities.User) (*dto.EntryResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetToday"), zap.String("user_id", user.ID))

	entry, err := u.entryRepo.FindByUserAndDate(ctx, user.ID, dateOnly(u.now()))
	if err != nil {
		if errors.Is(err, entities.ErrEntryNotFound) {
			return nil, err
		}
		log.Error(ctx, msgErrFindEntry, zap.Error(err))
		return nil, fmt.Errorf("getting today entry: %w", err)
	}

	return toEntryResponse(entry), nil
}

// History возвращает страницу истории записей, новые первыми.
func (u *EntryUseCaseImpl) History(ctx context.Context, user *entities.User, period string, page, pageSize int) (*dto.EntryListResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "History"), zap.String("user_id", user.ID))
	log.Debug(ctx, msgListingHistory, zap.String("period", period), zap.Int("page", page), zap.Int("page_size", pageSize))

	if page < 1 {
		return nil, entities.ErrInvalidPage
	}
	if pageSize < MinPageSize || pageSize > MaxPageSize {
		return nil, entities.ErrInvalidPageSize
	}

	since, err := periodStart(period, dateOnly(u.now()))
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	entries, total, err := u.entryRepo.ListByUser(ctx, user.ID, since, pageSize, offset)
	if err != nil {
		log.Error(ctx, msgErrListEntries, zap.Error(err))
		return nil, fmt.Errorf("listing history: %w", err)
	}

	responses := make([]*dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toEntryResponse(entry))
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &dto.EntryListResponse{
		Entries:    responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// validateHours проверяет границы часов: каждая категория в [0, 24],
// сумма строго больше 0 и не больше 24.
func validateHours(casual, serious, project float64) error {
	for _, hours := range []float64{casual, serious, project} {
		if hours < entities.MinHoursPerCategory || hours > entities.MaxHoursPerDay {
			return entities.ErrHoursOutOfRange
		}
	}

	total := casual + serious + project
	if total <= 0 {
		return entities.ErrTotalHoursNotPositive
	}
	if total > entities.MaxHoursPerDay {
		return entities.ErrTotalHoursExceeded
	}

	return nil
}

// normalizeNote обрезает пробелы; пустая после обрезки заметка
// нормализуется в отсутствующую.
func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// periodStart возвращает начало фильтра по периоду или nil для полной истории.
func periodStart(period string, today time.Time) (*time.Time, error) {
	switch period {
	case "":
		return nil, nil
	case PeriodWeek:
		start := today.AddDate(0, 0, -daysInWeek)
		return &start, nil
	case PeriodMonth:
		start := today.AddDate(0, 0, -daysInMonth)
		return &start, nil
	default:
		return nil, entities.ErrInvalidPeriod
	}
}

// dateOnly усекает время до календарной даты в UTC.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// toEntryResponse преобразует доменную запись в транспортное представление.
func toEntryResponse(entry *entities.Entry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:                  entry.ID,
		UserID:              entry.UserID,
		EntryDate:           entry.EntryDate.Format(entities.EntryDateFormat),
		CasualLeisureHours:  entry.CasualHours,
		CasualLeisureNote:   entry.CasualNote,
		SeriousLeisureHours: entry.SeriousHours,
		SeriousLeisureNote:  entry.SeriousNote,
		ProjectLeisureHours: entry.ProjectHours,
		ProjectLeisureNote:  entry.ProjectNote,
		TotalHours:          entry.TotalHours,
		CreatedAt:           entry.CreatedAt,
	}
}
