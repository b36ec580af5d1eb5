// Package statistics содержит HTTP обработчики статистики.
package statistics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/http/middleware"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/pkg/logger"
)

// DefaultTrendDays - окно трендов по умолчанию.
const DefaultTrendDays = 30

// Константы для логирования.
const (
	LogHandlerOverview = "statistics handler: overview"
	LogHandlerTrends   = "statistics handler: trends"
	LogHandlerReset    = "statistics handler: reset"

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

// Handler содержит HTTP обработчики статистики.
type Handler struct {
	statsUseCase api.StatisticsUseCase
}

// NewHandler создает новый экземпляр обработчика статистики.
func NewHandler(statsUseCase api.StatisticsUseCase) *Handler {
	return &Handler{
		statsUseCase: statsUseCase,
	}
}

// Overview обрабатывает запрос сводной статистики.
func (h *Handler) Overview(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerOverview)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	response, err := h.statsUseCase.Overview(requestCtx, user, ctx.Query("period"))
	if err != nil {
		if errors.Is(err, entities.ErrInvalidPeriod) {
			return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "failed to compute statistics")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Trends обрабатывает запрос временных рядов по категориям.
func (h *Handler) Trends(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerTrends)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	days := DefaultTrendDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return sendErrorResponse(ctx, http.StatusBadRequest, "days must be an integer")
		}
		days = parsed
	}

	response, err := h.statsUseCase.Trends(requestCtx, user, days)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidTrendDays) {
			return sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
		}
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "failed to compute trends")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Reset обрабатывает запрос полного удаления данных пользователя.
func (h *Handler) Reset(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerReset)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.statsUseCase.Reset(requestCtx, user); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "failed to reset user data")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
