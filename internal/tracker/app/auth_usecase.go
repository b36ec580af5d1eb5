package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"leisurelog/internal/tracker/app/dto"
	"leisurelog/internal/tracker/domain/entities"
	"leisurelog/internal/tracker/ports/api"
	"leisurelog/internal/tracker/ports/repositories"
	"leisurelog/internal/tracker/ports/services"
	"leisurelog/pkg/logger"
)

// Префикс ключей кэша проверенных токенов.
const TokenCacheKeyPrefix = "token:"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Константы для логирования.
const (
	msgSendingOTP     = "requesting OTP delivery"
	msgVerifyingOTP   = "verifying OTP"
	msgUserCreated    = "local user created on first login"
	msgRefreshing     = "refreshing session"
	msgTokenCacheHit  = "token resolved from cache"
	msgResolvingToken = "resolving bearer token"

	msgErrSendOTP      = "failed to request OTP"
	msgErrVerifyOTP    = "failed to verify OTP"
	msgErrCreateUser   = "failed to create local user"
	msgErrFindUser     = "failed to find local user"
	msgErrTokenCache   = "failed to access token cache"
	msgErrCacheEncode  = "failed to encode cached identity"
	msgErrInvalidEmail = "invalid email format"
)

// AuthUseCaseImpl реализует интерфейс api.AuthUseCase. Проверка токенов
// делегирована провайдеру идентификации; подтвержденная идентичность
// кэшируется по хэшу токена, чтобы не ходить к провайдеру на каждый запрос.
type AuthUseCaseImpl struct {
	identity services.IdentityGateway
	userRepo repositories.UserRepository
	cache    services.Cache
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthUseCase создает новый сервис аутентификации.
// nil cache отключает кэширование токенов, nil now означает системное время.
func NewAuthUseCase(
	identity services.IdentityGateway,
	userRepo repositories.UserRepository,
	cache services.Cache,
	tokenTTL time.Duration,
	now func() time.Time,
) api.AuthUseCase {
	if now == nil {
		now = time.Now
	}
	return &AuthUseCaseImpl{
		identity: identity,
		userRepo: userRepo,
		cache:    cache,
		tokenTTL: tokenTTL,
		now:      now,
	}
}

// SendOTP запрашивает отправку одноразового кода на email.
func (a *AuthUseCaseImpl) SendOTP(ctx context.Context, email string) error {
	log := logger.Log(ctx).With(zap.String("method", "SendOTP"))
	log.Info(ctx, msgSendingOTP)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgErrInvalidEmail)
		return err
	}

	if err := a.identity.SendOTP(ctx, email); err != nil {
		log.Error(ctx, msgErrSendOTP, zap.Error(err))
		return fmt.Errorf("sending OTP: %w", err)
	}

	return nil
}

// VerifyOTP обменивает код на сессию провайдера и лениво создает
// локального пользователя при первом успешном входе.
func (a *AuthUseCaseImpl) VerifyOTP(ctx context.Context, email, otp string) (*dto.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "VerifyOTP"))
	log.Info(ctx, msgVerifyingOTP)

	if err := validateEmail(email); err != nil {
		log.Debug(ctx, msgErrInvalidEmail)
		return nil, err
	}

	session, err := a.identity.VerifyOTP(ctx, email, otp)
	if err != nil {
		log.Debug(ctx, msgErrVerifyOTP, zap.Error(err))
		return nil, fmt.Errorf("verifying OTP: %w", err)
	}

	user, err := a.findOrCreateUser(ctx, &session.Identity)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		User:         toUserResponse(user),
	}, nil
}

// Refresh обменивает refresh токен на новую сессию.
func (a *AuthUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", "Refresh"))
	log.Info(ctx, msgRefreshing)

	session, err := a.identity.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing session: %w", err)
	}

	user, err := a.userRepo.FindByProviderID(ctx, session.Identity.ProviderUserID)
	if err != nil {
		log.Debug(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("finding user for refreshed session: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    session.TokenType,
		User:         toUserResponse(user),
	}, nil
}

// ResolveUser сопоставляет bearer токен с локальным пользователем.
// Подтвержденная провайдером идентичность кэшируется по SHA-256 токена;
// сам токен в кэш не попадает.
func (a *AuthUseCaseImpl) ResolveUser(ctx context.Context, accessToken string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "ResolveUser"))
	log.Debug(ctx, msgResolvingToken)

	cacheKey := tokenCacheKey(accessToken)

	identity := a.cachedIdentity(ctx, cacheKey)
	if identity == nil {
		resolved, err := a.identity.ResolveToken(ctx, accessToken)
		if err != nil {
			return nil, fmt.Errorf("resolving token: %w", err)
		}
		identity = resolved
		a.cacheIdentity(ctx, cacheKey, accessToken, identity)
	} else {
		log.Debug(ctx, msgTokenCacheHit)
	}

	user, err := a.userRepo.FindByProviderID(ctx, identity.ProviderUserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("finding user by provider id: %w", err)
	}

	return user, nil
}

// findOrCreateUser находит локального пользователя по идентичности
// провайдера или создает его. Гонка конкурентного создания разрешается
// повторным поиском вместо ошибки.
func (a *AuthUseCaseImpl) findOrCreateUser(ctx context.Context, identity *entities.Identity) (*entities.User, error) {
	log := logger.Log(ctx)

	user, err := a.userRepo.FindByProviderID(ctx, identity.ProviderUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrFindUser, zap.Error(err))
		return nil, fmt.Errorf("finding user: %w", err)
	}

	created, createErr := a.userRepo.Create(ctx, &entities.User{
		ProviderUserID: identity.ProviderUserID,
		Email:          identity.Email,
	})
	if createErr == nil {
		log.Info(ctx, msgUserCreated, zap.String("user_id", created.ID))
		return created, nil
	}

	// Конкурентный вход тем же пользователем мог создать строку первым.
	user, err = a.userRepo.FindByProviderID(ctx, identity.ProviderUserID)
	if err == nil {
		return user, nil
	}

	log.Error(ctx, msgErrCreateUser, zap.Error(createErr))
	return nil, fmt.Errorf("creating user: %w", createErr)
}

// cachedIdentity читает идентичность из кэша; любая ошибка - промах.
func (a *AuthUseCaseImpl) cachedIdentity(ctx context.Context, key string) *entities.Identity {
	if a.cache == nil {
		return nil
	}
	log := logger.Log(ctx)

	value, err := a.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgErrTokenCache, zap.Error(err))
		return nil
	}
	if value == "" {
		return nil
	}

	var identity entities.Identity
	if err := json.Unmarshal([]byte(value), &identity); err != nil || identity.ProviderUserID == "" {
		return nil
	}
	return &identity
}

// cacheIdentity сохраняет идентичность с TTL, не превышающим срок жизни
// токена из его exp утверждения.
func (a *AuthUseCaseImpl) cacheIdentity(ctx context.Context, key, accessToken string, identity *entities.Identity) {
	if a.cache == nil {
		return
	}
	log := logger.Log(ctx)

	ttl := a.identityCacheTTL(accessToken)
	if ttl <= 0 {
		return
	}

	encoded, err := json.Marshal(identity)
	if err != nil {
		log.Warn(ctx, msgErrCacheEncode, zap.Error(err))
		return
	}
	if err := a.cache.Set(ctx, key, string(encoded), ttl); err != nil {
		log.Warn(ctx, msgErrTokenCache, zap.Error(err))
	}
}

// identityCacheTTL ограничивает TTL кэша сроком жизни токена. Токен не
// проверяется криптографически - это делает провайдер; exp читается
// без проверки подписи только чтобы не кэшировать дольше срока жизни.
func (a *AuthUseCaseImpl) identityCacheTTL(accessToken string) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return a.tokenTTL
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return a.tokenTTL
	}

	until := exp.Time.Sub(a.now())
	if until <= 0 {
		return 0
	}
	if until < a.tokenTTL {
		return until
	}
	return a.tokenTTL
}

// validateEmail проверяет формат email перед обращением к провайдеру.
func validateEmail(email string) error {
	if email == "" {
		return entities.ErrInvalidEmail
	}
	if !emailRegex.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}

// tokenCacheKey строит ключ кэша из SHA-256 токена.
func tokenCacheKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return TokenCacheKeyPrefix + hex.EncodeToString(sum[:])
}

// toUserResponse преобразует пользователя в транспортное представление.
func toUserResponse(user *entities.User) dto.UserResponse {
	var lastEntry *string
	if user.LastEntryDate != nil {
		formatted := user.LastEntryDate.Format(entities.EntryDateFormat)
		lastEntry = &formatted
	}
	return dto.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		CreatedAt:     user.CreatedAt,
		LastEntryDate: lastEntry,
	}
}
