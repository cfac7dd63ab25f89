package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/optimizing"
	"github.com/vfg2006/mmm-engine-api/pkg/apiErrors"
	"github.com/vfg2006/mmm-engine-api/pkg/log"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// BudgetOptimizationRequest é o corpo do POST de otimização de orçamento.
// Bounds é opcional; canais ausentes ficam sem restrição.
type BudgetOptimizationRequest struct {
	StartDate   string                          `json:"start_date"`
	EndDate     string                          `json:"end_date"`
	TotalBudget float64                         `json:"total_budget"`
	Bounds      map[string]domain.ChannelBounds `json:"bounds,omitempty"`
}

// PostBudgetOptimization redistribui o orçamento diário entre os canais com
// base nas curvas de resposta da janela informada
func PostBudgetOptimization(service optimizing.Optimizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req BudgetOptimizationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		filters, err := parseRequestPeriod(req.StartDate, req.EndDate)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("optimization: invalid period in request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		if req.TotalBudget < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidBudget, "total_budget não pode ser negativo", map[string]any{
				"total_budget": req.TotalBudget,
			})
			return
		}

		logger.WithFields(log.Fields{
			"total_budget": req.TotalBudget,
			"channels":     len(req.Bounds),
		}).Info("optimization: running budget optimization")

		plan, err := service.OptimizeBudget(filters, req.TotalBudget, req.Bounds)
		if err != nil {
			handleOptimizationError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plan); err != nil {
			logger.WithField("error", err.Error()).Error("optimization: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func handleOptimizationError(w http.ResponseWriter, logger log.Logger, err error) {
	logger.WithField("error", err.Error()).Error("optimization: budget optimization failed")

	switch {
	case errors.Is(err, optimizing.ErrInvalidBudget):
		apiErrors.WriteError(w, apiErrors.ErrInvalidBudget, err.Error(), nil)
	case errors.Is(err, optimizing.ErrIterationCeiling):
		apiErrors.WriteError(w, apiErrors.ErrIterationCeiling, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao otimizar orçamento", nil)
	}
}

// parseRequestPeriod valida a janela de datas vinda do corpo da requisição.
func parseRequestPeriod(startParam, endParam string) (*domain.PeriodFilters, error) {
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
