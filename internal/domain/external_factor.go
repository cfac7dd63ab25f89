package domain

import "time"

// ExternalFactor anota uma data com fatores externos (feriados, sazonalidade,
// atividade de concorrentes). Metadado somente leitura para o core.
type ExternalFactor struct {
	Date               time.Time `json:"date"`
	IsHoliday          bool      `json:"is_holiday"`
	HolidayName        *string   `json:"holiday_name"`
	CompetitorActivity *string   `json:"competitor_activity"`
	SeasonalityIndex   float64   `json:"seasonality_index"`
}
