// Package entries содержит HTTP обработчики ежедневных записей.
package entries

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/app/http/middleware"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/pkg/logger"
)

// Параметры пагинации по умолчанию.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Константы для логирования.
const (
	LogHandlerCanSubmit = "entries handler: can submit"
	LogHandlerCreate    = "entries handler: create entry"
	LogHandlerGetToday  = "entries handler: get today"
	LogHandlerHistory   = "entries handler: history"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Вспомогательная функция для отправки ошибок HTTP.
func sendErrorResponse(ctx fiber.Ctx, statusCode int, message string) error {
	if err := ctx.Status(statusCode).JSON(fiber.Map{
		"error": message,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// statusFromError сопоставляет доменную ошибку с кодом HTTP ответа.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrHoursOutOfRange),
		errors.Is(err, entities.ErrTotalHoursNotPositive),
		errors.Is(err, entities.ErrTotalHoursExceeded),
		errors.Is(err, entities.ErrInvalidEntryDate),
		errors.Is(err, entities.ErrInvalidPeriod),
		errors.Is(err, entities.ErrInvalidPage),
		errors.Is(err, entities.ErrInvalidPageSize):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrEntryExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Handler содержит HTTP обработчики ежедневных записей.
type Handler struct {
	entryUseCase api.EntryUseCase
}

// NewHandler создает новый экземпляр обработчика записей.
func NewHandler(entryUseCase api.EntryUseCase) *Handler {
	return &Handler{
		entryUseCase: entryUseCase,
	}
}

// CanSubmit обрабатывает запрос проверки возможности отправки за сегодня.
func (h *Handler) CanSubmit(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCanSubmit)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	response, err := h.entryUseCase.CanSubmit(requestCtx, user)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), "failed to check submission status")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Create обрабатывает запрос на создание ежедневной записи.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreate)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateEntryRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	response, err := h.entryUseCase.Submit(requestCtx, user, &req)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrEntryExists) {
			return sendErrorResponse(ctx, http.StatusConflict,
				"An entry for this date already exists. Entries cannot be modified.")
		}
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusCreated).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// GetToday обрабатывает запрос сегодняшней записи пользователя.
func (h *Handler) GetToday(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetToday)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	response, err := h.entryUseCase.GetToday(requestCtx, user)
	if err != nil {
		if errors.Is(err, entities.ErrEntryNotFound) {
			return sendErrorResponse(ctx, http.StatusNotFound, "no entry for today")
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), "failed to load today's entry")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// History обрабатывает запрос страницы истории записей.
func (h *Handler) History(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerHistory)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	page, err := queryInt(ctx, "page", DefaultPage)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, "page must be an integer")
	}
	pageSize, err := queryInt(ctx, "page_size", DefaultPageSize)
	if err != nil {
		return sendErrorResponse(ctx, http.StatusBadRequest, "page_size must be an integer")
	}
	period := ctx.Query("period")

	response, err := h.entryUseCase.History(requestCtx, user, period, page, pageSize)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), err.Error())
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// queryInt читает целочисленный параметр запроса со значением по умолчанию.
func queryInt(ctx fiber.Ctx, name string, fallback int) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing query parameter %s: %w", name, err)
	}
	return value, nil
}
