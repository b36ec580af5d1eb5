// Package auth содержит HTTP обработчики аутентификации.
package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/app/http/middleware"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSendOTP   = "auth handler: send otp"
	LogHandlerVerifyOTP = "auth handler: verify otp"
	LogHandlerRefresh   = "auth handler: refresh session"
	LogHandlerMe        = "auth handler: current user"

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
	case errors.Is(err, entities.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrInvalidOTP),
		errors.Is(err, entities.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrUserExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
	}
}

// SendOTP обрабатывает запрос на отправку одноразового кода.
func (h *Handler) SendOTP(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSendOTP)

	var req dto.SendOTPRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email is required")
	}

	if err := h.authUseCase.SendOTP(requestCtx, req.Email); err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, statusFromError(err), "failed to send verification code")
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.SendOTPResponse{
		Message: "Verification code sent to your email",
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// VerifyOTP обрабатывает запрос на проверку одноразового кода.
func (h *Handler) VerifyOTP(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerVerifyOTP)

	var req dto.VerifyOTPRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.OTP == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "email and otp are required")
	}

	response, err := h.authUseCase.VerifyOTP(requestCtx, req.Email, req.OTP)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		if errors.Is(err, entities.ErrInvalidOTP) {
			return sendErrorResponse(ctx, http.StatusUnauthorized, "invalid or expired verification code")
		}
		return sendErrorResponse(ctx, statusFromError(err), "failed to verify code")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Refresh обрабатывает запрос на обновление сессии.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RefreshToken == "" {
		return sendErrorResponse(ctx, http.StatusBadRequest, "refresh token is required")
	}

	response, err := h.authUseCase.Refresh(requestCtx, req.RefreshToken)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return sendErrorResponse(ctx, http.StatusUnauthorized, "failed to refresh session")
	}

	if err := ctx.Status(http.StatusOK).JSON(response); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// Me обрабатывает запрос профиля текущего пользователя.
func (h *Handler) Me(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerMe)

	user, ok := middleware.UserFromCtx(ctx)
	if !ok {
		return sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
	}

	var lastEntry *string
	if user.LastEntryDate != nil {
		formatted := user.LastEntryDate.Format(entities.EntryDateFormat)
		lastEntry = &formatted
	}

	if err := ctx.Status(http.StatusOK).JSON(dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		CreatedAt:     user.CreatedAt,
		LastEntryDate: lastEntry,
	}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}
