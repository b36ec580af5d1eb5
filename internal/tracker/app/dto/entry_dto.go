// Package dto содержит объекты передачи данных HTTP API.
package dto

import "time"

// CreateEntryRequest содержит данные для создания ежедневной записи.
// EntryDate в формате YYYY-MM-DD; пустая дата означает сегодня
// (ретроактивные записи за прошлые даты разрешены).
type CreateEntryRequest struct {
	EntryDate          string  `json:"entry_date,omitempty"`
	CasualLeisureHours float64 `json:"casual_leisure_hours"`
	CasualLeisureNote  *string `json:"casual_leisure_note,omitempty"`

	SeriousLeisureHours float64 `json:"serious_leisure_hours"`
	SeriousLeisureNote  *string `json:"serious_leisure_note,omitempty"`

	ProjectLeisureHours float64 `json:"project_leisure_hours"`
	ProjectLeisureNote  *string `json:"project_leisure_note,omitempty"`
}

// EntryResponse содержит данные одной ежедневной записи.
type EntryResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	EntryDate           string    `json:"entry_date"`
	CasualLeisureHours  float64   `json:"casual_leisure_hours"`
	CasualLeisureNote   *string   `json:"casual_leisure_note"`
	SeriousLeisureHours float64   `json:"serious_leisure_hours"`
	SeriousLeisureNote  *string   `json:"serious_leisure_note"`
	ProjectLeisureHours float64   `json:"project_leisure_hours"`
	ProjectLeisureNote  *string   `json:"project_leisure_note"`
	TotalHours          float64   `json:"total_hours"`
	CreatedAt           time.Time `json:"created_at"`
}

// CanSubmitResponse содержит результат проверки возможности отправки за сегодня.
type CanSubmitResponse struct {
	CanSubmit     bool           `json:"can_submit"`
	Reason        *string        `json:"reason,omitempty"`
	ExistingEntry *EntryResponse `json:"existing_entry,omitempty"`
}

// EntryListResponse содержит страницу истории записей.
type EntryListResponse struct {
	Entries    []*EntryResponse `json:"entries"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
