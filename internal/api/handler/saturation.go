package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/mmm-engine-api/internal/usecases/saturating"
	"github.com/vfg2006/mmm-engine-api/pkg/apiErrors"
	"github.com/vfg2006/mmm-engine-api/pkg/log"
)

// GetSaturationAnalysis ajusta as curvas de resposta da janela e devolve, por
// canal, ponto de saturação, status de eficiência e curva de retorno marginal
func GetSaturationAnalysis(service saturating.Estimator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parsePeriodFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("saturation: invalid period filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("saturation: running channel saturation analysis")

		analysis, err := service.Analyze(filters)
		if err != nil {
			logger.WithField("error", err.Error()).Error("saturation: analysis failed")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao analisar saturação dos canais", nil)
			return
		}

		if len(analysis.Channels) == 0 {
			logger.Warn("saturation: no channel could be analyzed in the requested window")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientData, "Nenhum canal com dados suficientes na janela informada", analysis.Skipped)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(analysis); err != nil {
			logger.WithField("error", err.Error()).Error("saturation: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
