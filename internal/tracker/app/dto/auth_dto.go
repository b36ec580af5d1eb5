package dto

import "time"

// SendOTPRequest содержит данные для запроса одноразового кода.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendOTPResponse содержит результат отправки одноразового кода.
type SendOTPResponse struct {
	Message string `json:"message"`
}

// VerifyOTPRequest содержит данные для проверки одноразового кода.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// RefreshRequest содержит данные для обновления сессии.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse содержит данные профиля пользователя.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
	LastEntryDate *string   `json:"last_entry_date"`
}

// TokenResponse содержит данные сессии после успешной аутентификации.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}
