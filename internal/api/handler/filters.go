package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// parsePeriodFilters extrai e valida a janela de datas obrigatória das
// query strings start_date e end_date (formato YYYY-MM-DD).
func parsePeriodFilters(r *http.Request) (*domain.PeriodFilters, error) {
	startParam := r.URL.Query().Get("start_date")
	endParam := r.URL.Query().Get("end_date")

	if startParam == "" || endParam == "" {
		return nil, errors.New("start_date e end_date são obrigatórios no formato YYYY-MM-DD")
	}

	startDate, err := utils.ParseDate(startParam)
	if err != nil {
		return nil, errors.Wrap(err, "start_date inválida")
	}

	endDate, err := utils.ParseDate(endParam)
	if err != nil {
		return nil, errors.Wrap(err, "end_date inválida")
	}

	if endDate.Before(*startDate) {
		return nil, errors.New("end_date não pode ser anterior a start_date")
	}

	return &domain.PeriodFilters{
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}
