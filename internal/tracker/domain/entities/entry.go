package entities

import (
	"errors"
	"time"
)

// Формат даты записи в API и хранилище.
const EntryDateFormat = "2006-01-02"

// Пределы часов для одной записи.
const (
	MinHoursPerCategory = 0.0
	MaxHoursPerDay      = 24.0
)

// Определяем ошибки домена записей.
var (
	ErrHoursOutOfRange       = errors.New("hours must be between 0 and 24")
	ErrTotalHoursNotPositive = errors.New("total hours must be greater than 0")
	ErrTotalHoursExceeded    = errors.New("total hours cannot exceed 24")
	ErrInvalidEntryDate      = errors.New("invalid entry date format, expected YYYY-MM-DD")
	ErrEntryExists           = errors.New("an entry already exists for this date; entries cannot be modified")
	ErrEntryNotFound         = errors.New("entry not found")
	ErrInvalidPeriod         = errors.New("period must be 'week', 'month' or empty")
	ErrInvalidPage           = errors.New("page must be greater than or equal to 1")
	ErrInvalidPageSize       = errors.New("page_size must be between 1 and 100")
	ErrInvalidTrendDays      = errors.New("days must be between 7 and 365")
)

// Entry представляет одну запись пользователя за календарную дату.
// Записи неизменяемы: единственная разрушающая операция - полный сброс
// всех записей пользователя. TotalHours всегда вычисляется как сумма
// часов трех категорий и никогда не задается извне.
type Entry struct {
	ID           string
	UserID       string
	EntryDate    time.Time
	CasualHours  float64
	CasualNote   *string
	SeriousHours float64
	SeriousNote  *string
	ProjectHours float64
	ProjectNote  *string
	TotalHours   float64
	CreatedAt    time.Time
}
