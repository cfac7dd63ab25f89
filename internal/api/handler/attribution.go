package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/attributing"
	"github.com/vfg2006/mmm-engine-api/pkg/apiErrors"
	"github.com/vfg2006/mmm-engine-api/pkg/log"
)

// GetAttribution calcula a atribuição multicanal para o modelo pedido na
// query string (padrão linear)
func GetAttribution(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parsePeriodFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("attribution: invalid period filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		model := domain.AttributionModel(r.URL.Query().Get("model"))
		if model == "" {
			model = domain.ModelLinear
		}
		if !model.Valid() {
			logger.WithField("model", model).Warn("attribution: unknown attribution model")
			apiErrors.WriteError(w, apiErrors.ErrUnknownAttributionModel, "Modelo de atribuição desconhecido", map[string]any{
				"model": model,
			})
			return
		}

		logger.WithFields(log.Fields{
			"model":      model,
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("attribution: computing channel attribution")

		result, err := service.Attribute(filters, model)
		if err != nil {
			logger.WithFields(log.Fields{
				"model": model,
				"error": err.Error(),
			}).Error("attribution: failed to compute attribution")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao calcular atribuição", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithField("error", err.Error()).Error("attribution: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAttributionComparison roda os quatro modelos sobre a mesma janela e
// devolve a variância por canal com o modelo recomendado
func GetAttributionComparison(service attributing.Attributor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parsePeriodFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("attribution: invalid period filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("attribution: comparing attribution models")

		comparison, err := service.CompareModels(filters)
		if err != nil {
			logger.WithField("error", err.Error()).Error("attribution: failed to compare models")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao comparar modelos de atribuição", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(comparison); err != nil {
			logger.WithField("error", err.Error()).Error("attribution: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAttributionSnapshots lê os snapshots noturnos persistidos pelo agendador
func GetAttributionSnapshots(repo repository.AttributionResultRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parsePeriodFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("attribution: invalid period filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		model := domain.AttributionModel(r.URL.Query().Get("model"))
		if model == "" {
			model = domain.ModelLinear
		}
		if !model.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrUnknownAttributionModel, "Modelo de atribuição desconhecido", map[string]any{
				"model": model,
			})
			return
		}

		entries, err := repo.GetByPeriodAndModel(*filters.StartDate, *filters.EndDate, model)
		if err != nil {
			logger.WithField("error", err.Error()).Error("attribution: failed to fetch snapshots")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshots de atribuição", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"model":   model,
			"results": entries,
		}); err != nil {
			logger.WithField("error", err.Error()).Error("attribution: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
