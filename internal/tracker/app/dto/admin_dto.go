package dto

import "time"

// UserStatsResponse содержит сводку по одному пользователю для админки.
type UserStatsResponse struct {
	UserID              string             `json:"user_id"`
	Email               string             `json:"email"`
	CreatedAt           time.Time          `json:"created_at"`
	EntryCount          int                `json:"entry_count"`
	CasualTotal         float64            `json:"casual_total"`
	SeriousTotal        float64            `json:"serious_total"`
	ProjectTotal        float64            `json:"project_total"`
	TotalHours          float64            `json:"total_hours"`
	LeisureDistribution map[string]float64 `json:"leisure_distribution"`
}

// WordCloudResponse содержит корпус заметок всех пользователей,
// разделенный по категориям досуга.
type WordCloudResponse struct {
	CasualText        string `json:"casual_text"`
	SeriousText       string `json:"serious_text"`
	ProjectText       string `json:"project_text"`
	TotalEntries      int    `json:"total_entries"`
	CasualNotesCount  int    `json:"casual_notes_count"`
	SeriousNotesCount int    `json:"serious_notes_count"`
	ProjectNotesCount int    `json:"project_notes_count"`
}
