package entities

import "errors"

// Определяем ошибки аутентификации и авторизации.
var (
	ErrMissingAuthHeader   = errors.New("missing authorization header")
	ErrInvalidTokenFormat  = errors.New("invalid authorization header format")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrInvalidOTP          = errors.New("invalid OTP")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
	ErrAdminForbidden      = errors.New("admin access denied")
)

// Identity представляет идентичность, подтвержденную внешним провайдером.
type Identity struct {
	ProviderUserID string
	Email          string
}
