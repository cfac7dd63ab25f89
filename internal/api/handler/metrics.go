package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/reporting"
	"github.com/vfg2006/mmm-engine-api/pkg/apiErrors"
	"github.com/vfg2006/mmm-engine-api/pkg/log"
)

// Janela padrão dos relatórios quando o cliente não informa datas.
const defaultReportDays = 30

// GetMetricsOverview devolve os agregados do período com a comparação frente
// ao período anterior
func GetMetricsOverview(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := reportPeriodFilters(r)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("metrics: invalid period filters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("metrics: building overview report")

		report, err := service.Overview(filters)
		if err != nil {
			logger.WithField("error", err.Error()).Error("metrics: failed to build overview report")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório de visão geral", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("metrics: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// reportPeriodFilters resolve a janela dos relatórios: as query strings quando
// presentes, senão os últimos 30 dias.
func reportPeriodFilters(r *http.Request) (*domain.PeriodFilters, error) {
	if r.URL.Query().Get("start_date") == "" && r.URL.Query().Get("end_date") == "" {
		return reporting.DefaultFilters(defaultReportDays, time.Now()), nil
	}

	return parsePeriodFilters(r)
}

// GetChannelPerformance detalha a série diária e as campanhas ativas do canal
func GetChannelPerformance(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		channel := httprouter.ParamsFromContext(r.Context()).ByName("channel")
		if channel == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Canal não informado", nil)
			return
		}

		filters, err := reportPeriodFilters(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"channel": channel,
				"error":   err.Error(),
			}).Warn("metrics: invalid period filters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		logger.WithFields(log.Fields{
			"channel":    channel,
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("metrics: building channel performance report")

		report, err := service.ChannelPerformance(channel, filters)
		if err != nil {
			logger.WithFields(log.Fields{
				"channel": channel,
				"error":   err.Error(),
			}).Error("metrics: failed to build channel performance report")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar relatório do canal", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithField("error", err.Error()).Error("metrics: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
