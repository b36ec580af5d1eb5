// Package admin содержит HTTP обработчики административных агрегатов.
package admin

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/ports/api"
	"leisurelog/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerUsersStats = "admin handler: users stats"
	LogHandlerWordCloud  = "admin handler: word cloud data"

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

// Handler содержит HTTP обработчики административных агрегатов.
type Handler struct {
	adminUseCase api.AdminUseCase
}

// NewHandler создает новый экземпляр административного обработчика.
func NewHandler(adminUseCase api.AdminUseCase) *Handler {
	return &Handler{
		adminUseCase: adminUseCase,
	}
}

// UsersStats обрабатывает запрос агрегатов по всем пользователям.
func (h *Handler) UsersStats(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUsersStats)

	response, err := h.adminUseCase.AllUserStats(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "failed to aggregate user statistics")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// WordCloudData обрабатывает запрос корпуса заметок для облака слов.
func (h *Handler) WordCloudData(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerWordCloud)

	response, err := h.adminUseCase.NotesCorpus(requestCtx)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusInternalServerError, "failed to aggregate notes corpus")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
