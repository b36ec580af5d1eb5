package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/internal/tracker/ports/repositories"
	"leisurelog/internal/tracker/ports/services"
	"leisurelog/pkg/logger"
)

// Ключи кэша административных агрегатов.
const (
	UsersStatsCacheKey = "admin:users-stats"
	WordCloudCacheKey  = "admin:word-cloud"
)

// Ключи категорий в распределении досуга.
const (
	categoryCasual  = "casual"
	categorySerious = "serious"
	categoryProject = "project"
)

// Константы для логирования.
const (
	msgComputingUserStats = "computing cross-user statistics"
	msgComputingWordCloud = "aggregating notes corpus"
	msgServedFromCache    = "admin aggregate served from cache"

	msgErrListUsers   = "failed to list users"
	msgErrLoadAll     = "failed to load entries"
	msgErrCacheRead   = "failed to read admin cache"
	msgErrCacheWrite  = "failed to write admin cache"
	msgErrCacheDecode = "failed to decode cached admin aggregate"
)

// AdminUseCaseImpl реализует интерфейс api.AdminUseCase.
// Агрегаты - чистые read-only редукции, поэтому кэшируются с коротким
// TTL; любая ошибка кэша деградирует до прямого вычисления.
type AdminUseCaseImpl struct {
	userRepo  repositories.UserRepository
	entryRepo repositories.EntryRepository
	cache     services.Cache
	statsTTL  time.Duration
}

// NewAdminUseCase создает новый межпользовательский агрегатор.
// nil cache отключает кэширование.
func NewAdminUseCase(
	userRepo repositories.UserRepository,
	entryRepo repositories.EntryRepository,
	cache services.Cache,
	statsTTL time.Duration,
) api.AdminUseCase {
	return &AdminUseCaseImpl{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		cache:     cache,
		statsTTL:  statsTTL,
	}
}

// AllUserStats возвращает сводку по каждому пользователю, новые первыми.
func (u *AdminUseCaseImpl) AllUserStats(ctx context.Context) ([]*dto.UserStatsResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "AllUserStats"))

	var cached []*dto.UserStatsResponse
	if u.readCache(ctx, UsersStatsCacheKey, &cached) {
		log.Debug(ctx, msgServedFromCache, zap.String("key", UsersStatsCacheKey))
		return cached, nil
	}

	log.Debug(ctx, msgComputingUserStats)

	users, err := u.userRepo.ListAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	stats := make([]*dto.UserStatsResponse, 0, len(users))
	for _, user := range users {
		entries, err := u.entryRepo.ListByUserSince(ctx, user.ID, nil, false)
		if err != nil {
			log.Error(ctx, msgErrLoadAll, zap.Error(err), zap.String("user_id", user.ID))
			return nil, fmt.Errorf("loading entries for user %s: %w", user.ID, err)
		}

		var casualTotal, seriousTotal, projectTotal float64
		for _, entry := range entries {
			casualTotal += entry.CasualHours
			seriousTotal += entry.SeriousHours
			projectTotal += entry.ProjectHours
		}

		stats = append(stats, &dto.UserStatsResponse{
			UserID:       user.ID,
			Email:        user.Email,
			CreatedAt:    user.CreatedAt,
			EntryCount:   len(entries),
			CasualTotal:  casualTotal,
			SeriousTotal: seriousTotal,
			ProjectTotal: projectTotal,
			TotalHours:   casualTotal + seriousTotal + projectTotal,
			LeisureDistribution: map[string]float64{
				categoryCasual:  casualTotal,
				categorySerious: seriousTotal,
				categoryProject: projectTotal,
			},
		})
	}

	u.writeCache(ctx, UsersStatsCacheKey, stats)
	return stats, nil
}

// NotesCorpus собирает корпус заметок всех пользователей, разделенный
// по категориям досуга. Авторство заметок не сохраняется.
func (u *AdminUseCaseImpl) NotesCorpus(ctx context.Context) (*dto.WordCloudResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "NotesCorpus"))

	var cached dto.WordCloudResponse
	if u.readCache(ctx, WordCloudCacheKey, &cached) {
		log.Debug(ctx, msgServedFromCache, zap.String("key", WordCloudCacheKey))
		return &cached, nil
	}

	log.Debug(ctx, msgComputingWordCloud)

	entries, err := u.entryRepo.ListAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadAll, zap.Error(err))
		return nil, fmt.Errorf("loading entries for corpus: %w", err)
	}

	var casual, serious, project []string
	for _, entry := range entries {
		if note := noteText(entry.CasualNote); note != "" {
			casual = append(casual, note)
		}
		if note := noteText(entry.SeriousNote); note != "" {
			serious = append(serious, note)
		}
		if note := noteText(entry.ProjectNote); note != "" {
			project = append(project, note)
		}
	}

	corpus := &dto.WordCloudResponse{
		CasualText:        strings.Join(casual, " "),
		SeriousText:       strings.Join(serious, " "),
		ProjectText:       strings.Join(project, " "),
		TotalEntries:      len(entries),
		CasualNotesCount:  len(casual),
		SeriousNotesCount: len(serious),
		ProjectNotesCount: len(project),
	}

	u.writeCache(ctx, WordCloudCacheKey, corpus)
	return corpus, nil
}

// readCache пытается прочитать агрегат из кэша; любая ошибка
// трактуется как промах.
func (u *AdminUseCaseImpl) readCache(ctx context.Context, key string, dest interface{}) bool {
	if u.cache == nil {
		return false
	}
	log := logger.Log(ctx)

	value, err := u.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err), zap.String("key", key))
		return false
	}
	if value == "" {
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		log.Warn(ctx, msgErrCacheDecode, zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

// writeCache сохраняет агрегат в кэш; ошибки только логируются.
func (u *AdminUseCaseImpl) writeCache(ctx context.Context, key string, value interface{}) {
	if u.cache == nil {
		return
	}
	log := logger.Log(ctx)

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
		return
	}
	if err := u.cache.Set(ctx, key, string(encoded), u.statsTTL); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err), zap.String("key", key))
	}
}

// noteText возвращает текст заметки или пустую строку.
func noteText(note *string) string {
	if note == nil {
		return ""
	}
	return *note
}
