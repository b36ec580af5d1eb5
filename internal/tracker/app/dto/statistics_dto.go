package dto

// CategoryStats содержит статистику одной категории досуга.
type CategoryStats struct {
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	EntryCount   int     `json:"entry_count"`
}

// OverallStats содержит сводную статистику по всем категориям.
// Все три категории вычисляются по одному и тому же отфильтрованному
// набору записей, поэтому entry_count у них совпадает.
type OverallStats struct {
	CasualLeisure     CategoryStats `json:"casual_leisure"`
	SeriousLeisure    CategoryStats `json:"serious_leisure"`
	ProjectLeisure    CategoryStats `json:"project_leisure"`
	TotalEntries      int           `json:"total_entries"`
	TotalHours        float64       `json:"total_hours"`
	AverageTotalHours float64       `json:"average_total_hours"`
	Period            string        `json:"period,omitempty"`
}

// TrendData содержит данные для графиков: пять выровненных по индексу
// последовательностей, упорядоченных по дате по возрастанию.
type TrendData struct {
	Dates        []string  `json:"dates"`
	CasualHours  []float64 `json:"casual_hours"`
	SeriousHours []float64 `json:"serious_hours"`
	ProjectHours []float64 `json:"project_hours"`
	TotalHours   []float64 `json:"total_hours"`
}
