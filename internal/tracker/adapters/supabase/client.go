// Package supabase содержит клиент внешнего провайдера идентификации,
// совместимого с GoTrue API (отправка OTP, обмен кода на сессию,
// проверка access токена).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"leisurelog/internal/tracker/config"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/services"
	"leisurelog/pkg/logger"
)

// Заголовки и пути GoTrue API.
const (
	headerAPIKey      = "apikey"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"

	pathOTP     = "/auth/v1/otp"
	pathVerify  = "/auth/v1/verify"
	pathUser    = "/auth/v1/user"
	pathRefresh = "/auth/v1/token?grant_type=refresh_token"
)

// Константы для логирования.
const (
	ErrorSendOTPFailed   = "failed to send OTP"
	ErrorVerifyOTPFailed = "failed to verify OTP"
	ErrorResolveFailed   = "failed to resolve token"
	ErrorRefreshFailed   = "failed to refresh session"
)

// Client реализует services.IdentityGateway поверх HTTP API провайдера.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewClient создает новый клиент провайдера идентификации.
func NewClient(cfg *config.SupabaseConfig) services.IdentityGateway {
	return &Client{
		baseURL:    cfg.URL,
		anonKey:    cfg.AnonKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// sessionPayload - тело ответа провайдера с сессией.
type sessionPayload struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	User         userPayload `json:"user"`
}

// userPayload - тело ответа провайдера с данными пользователя.
type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SendOTP запрашивает отправку одноразового кода на email.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("client", "supabase"), zap.String("method", "SendOTP"))

	body := map[string]interface{}{
		"email":       email,
		"create_user": true,
	}

	status, _, err := c.post(ctx, pathOTP, body)
	if err != nil {
		log.Error(ctx, ErrorSendOTPFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorSendOTPFailed, entities.ErrIdentityUnavailable)
	}
	if status != http.StatusOK {
		log.Error(ctx, ErrorSendOTPFailed, zap.Int("status", status))
		return fmt.Errorf("%s: unexpected status %d: %w", ErrorSendOTPFailed, status, entities.ErrIdentityUnavailable)
	}

	return nil
}

// VerifyOTP обменивает email и одноразовый код на сессию.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("client", "supabase"), zap.String("method", "VerifyOTP"))

	body := map[string]interface{}{
		"email": email,
		"token": code,
		"type":  "email",
	}

	status, respBody, err := c.post(ctx, pathVerify, body)
	if err != nil {
		log.Error(ctx, ErrorVerifyOTPFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorVerifyOTPFailed, entities.ErrIdentityUnavailable)
	}
	if status != http.StatusOK {
		log.Debug(ctx, "OTP rejected by provider", zap.Int("status", status))
		return nil, fmt.Errorf("provider rejected OTP: %w", entities.ErrInvalidOTP)
	}

	var payload sessionPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		log.Error(ctx, ErrorVerifyOTPFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: parsing response: %w", ErrorVerifyOTPFailed, err)
	}
	if payload.AccessToken == "" || payload.User.ID == "" {
		return nil, fmt.Errorf("incomplete session from provider: %w", entities.ErrInvalidOTP)
	}

	return sessionFromPayload(&payload), nil
}

// ResolveToken проверяет access токен у провайдера и возвращает идентичность.
// Транспортные ошибки трактуются как невалидный токен и не распространяются.
func (c *Client) ResolveToken(ctx context.Context, accessToken string) (*entities.Identity, error) {
	log := logger.Log(ctx).With(zap.String("client", "supabase"), zap.String("method", "ResolveToken"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathUser, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", ErrorResolveFailed, err)
	}
	req.Header.Set(headerAPIKey, c.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug(ctx, "provider unreachable during token validation", zap.Error(err))
		return nil, entities.ErrInvalidToken
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debug(ctx, "token rejected by provider", zap.Int("status", resp.StatusCode))
		return nil, entities.ErrInvalidToken
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug(ctx, "failed to read provider response", zap.Error(err))
		return nil, entities.ErrInvalidToken
	}

	var payload userPayload
	if err := json.Unmarshal(respBody, &payload); err != nil || payload.ID == "" {
		log.Debug(ctx, "malformed provider response")
		return nil, entities.ErrInvalidToken
	}

	return &entities.Identity{
		ProviderUserID: payload.ID,
		Email:          payload.Email,
	}, nil
}

// RefreshSession обменивает refresh токен на новую сессию.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("client", "supabase"), zap.String("method", "RefreshSession"))

	body := map[string]interface{}{
		"refresh_token": refreshToken,
	}

	status, respBody, err := c.post(ctx, pathRefresh, body)
	if err != nil {
		log.Error(ctx, ErrorRefreshFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorRefreshFailed, entities.ErrIdentityUnavailable)
	}
	if status != http.StatusOK {
		log.Debug(ctx, "refresh token rejected by provider", zap.Int("status", status))
		return nil, fmt.Errorf("provider rejected refresh token: %w", entities.ErrInvalidToken)
	}

	var payload sessionPayload
	if err := json.Unmarshal(respBody, &payload); err != nil {
		log.Error(ctx, ErrorRefreshFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: parsing response: %w", ErrorRefreshFailed, err)
	}

	return sessionFromPayload(&payload), nil
}

// post выполняет POST запрос с anon ключом и JSON телом.
func (c *Client) post(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(headerAPIKey, c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// sessionFromPayload преобразует тело ответа провайдера в сессию.
func sessionFromPayload(p *sessionPayload) *services.Session {
	tokenType := p.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}
	return &services.Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    tokenType,
		ExpiresIn:    p.ExpiresIn,
		Identity: entities.Identity{
			ProviderUserID: p.User.ID,
			Email:          p.User.Email,
		},
	}
}

// Проверка соответствия интерфейсу на этапе компиляции.
var _ services.IdentityGateway = (*Client)(nil)
