package domain

import "time"

// PeriodFilters delimita a janela [StartDate, EndDate] de uma consulta.
type PeriodFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}
