package attributing

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// Janela, em dias, do proxy de last-touch do modelo u_shaped.
const lastTouchWindowDays = 3

// Pesos do modelo u_shaped: 40% primeiro toque, 40% último toque e o
// restante dividido entre as demais datas.
const (
	uShapedEdgeCredit   = 0.4
	uShapedMiddleCredit = 0.2
)

type Service struct {
	cfg  *config.Config
	repo repository.MarketingDataRepository
}

func NewService(cfg *config.Config, repo repository.MarketingDataRepository) Attributor {
	return &Service{
		cfg:  cfg,
		repo: repo,
	}
}

func (s *Service) Attribute(filters *domain.PeriodFilters, model domain.AttributionModel) (*domain.AttributionResponse, error) {
	records, err := s.fetchRecords(filters)
	if err != nil {
		return nil, err
	}

	return Compute(records, filters, model, s.cfg.Attribution.HalfLifeDays)
}

func (s *Service) fetchRecords(filters *domain.PeriodFilters) ([]*domain.DailyChannelRecord, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("janela de datas é obrigatória para atribuição")
	}

	records, err := s.repo.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros diários para atribuição")
	}

	return records, nil
}

// Compute é o núcleo puro do motor de atribuição: opera somente sobre os
// registros recebidos, sem estado compartilhado, e por isso é seguro para
// execução concorrente entre janelas distintas.
func Compute(
	records []*domain.DailyChannelRecord,
	filters *domain.PeriodFilters,
	model domain.AttributionModel,
	halfLifeDays float64,
) (*domain.AttributionResponse, error) {
	if !model.Valid() {
		return nil, NewAttributionError(ErrUnknownModel, string(model))
	}

	channels := domain.Channels(records)
	totals := domain.TotalsByChannel(records)

	totalConversions := 0
	totalRevenue := 0.0
	for _, t := range totals {
		totalConversions += t.Conversions
		totalRevenue += t.Revenue
	}

	response := &domain.AttributionResponse{
		Model:   model,
		Filters: filters,
		Results: make([]*domain.ChannelAttribution, 0, len(channels)),
	}

	// Janela sem conversões atribuíveis: todos os pesos zerados, sinalizado
	// como vazio. Não é um erro.
	if totalConversions == 0 {
		response.Empty = true
		for _, channel := range channels {
			response.Results = append(response.Results, &domain.ChannelAttribution{Channel: channel})
		}
		return response, nil
	}

	endDate := rangeEnd(records, filters)

	var weights map[string]float64
	switch model {
	case domain.ModelLinear:
		weights = decayedShareWeights(records, endDate, math.Inf(1))
	case domain.ModelTimeDecay:
		weights = decayedShareWeights(records, endDate, halfLifeDays)
	case domain.ModelUShaped:
		weights = uShapedWeights(records, endDate)
	case domain.ModelDataDriven:
		weights = dataDrivenWeights(records, endDate)
	}

	for _, channel := range channels {
		weight := weights[channel]
		response.Results = append(response.Results, &domain.ChannelAttribution{
			Channel:               channel,
			Weight:                weight,
			AttributedConversions: utils.RoundWithTwoDecimalPlace(weight * float64(totalConversions)),
			AttributedRevenue:     utils.RoundWithTwoDecimalPlace(weight * totalRevenue),
			Percentage:            utils.RoundWithTwoDecimalPlace(weight * 100),
		})
	}

	sort.Slice(response.Results, func(i, j int) bool {
		if response.Results[i].Weight != response.Results[j].Weight {
			return response.Results[i].Weight > response.Results[j].Weight
		}
		return response.Results[i].Channel < response.Results[j].Channel
	})

	return response, nil
}

// rangeEnd resolve a data final efetiva da janela: o filtro quando presente,
// senão a maior data observada nos registros.
func rangeEnd(records []*domain.DailyChannelRecord, filters *domain.PeriodFilters) time.Time {
	if filters != nil && filters.EndDate != nil && !filters.EndDate.IsZero() {
		return *filters.EndDate
	}

	var end time.Time
	for _, r := range records {
		if r.Date.After(end) {
			end = r.Date
		}
	}
	return end
}

// decayedShareWeights implementa linear e time_decay com a mesma regra: o
// crédito de cada data é repartido entre os canais pela fração de conversões
// daquela data, e a massa de crédito da data é o total de conversões do dia
// ponderado pelo decaimento 2^(−(end−d)/halfLife). Com meia-vida infinita o
// decaimento é 1 e o modelo degenera no linear. Dias sem conversões
// contribuem zero, nunca divisão por zero.
func decayedShareWeights(records []*domain.DailyChannelRecord, endDate time.Time, halfLifeDays float64) map[string]float64 {
	weights := make(map[string]float64)
	totalMass := 0.0

	for _, r := range records {
		if r.Conversions <= 0 {
			continue
		}

		decay := 1.0
		if !math.IsInf(halfLifeDays, 1) && halfLifeDays > 0 {
			ageDays := endDate.Sub(r.Date).Hours() / 24
			decay = math.Exp2(-ageDays / halfLifeDays)
		}

		mass := float64(r.Conversions) * decay
		weights[r.Channel] += mass
		totalMass += mass
	}

	return normalizeWeights(weights, totalMass)
}

// uShapedWeights distribui 40% do crédito para a data de maior conversão da
// janela (proxy de primeiro toque), 40% para a data de maior conversão dos
// últimos 3 dias (proxy de último toque) e 20% linearmente entre as demais
// datas. Janelas com menos de 3 datas distintas colapsam para o linear.
func uShapedWeights(records []*domain.DailyChannelRecord, endDate time.Time) map[string]float64 {
	type dayBucket struct {
		date        time.Time
		conversions int
		byChannel   map[string]int
	}

	buckets := make(map[string]*dayBucket)
	for _, r := range records {
		key := r.Date.Format(time.DateOnly)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &dayBucket{date: r.Date, byChannel: make(map[string]int)}
			buckets[key] = bucket
		}
		bucket.conversions += r.Conversions
		bucket.byChannel[r.Channel] += r.Conversions
	}

	days := make([]*dayBucket, 0, len(buckets))
	for _, bucket := range buckets {
		days = append(days, bucket)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })

	if len(days) < lastTouchWindowDays {
		return decayedShareWeights(records, endDate, math.Inf(1))
	}

	// Primeiro toque: data com o maior total de conversões da janela;
	// empate resolve para a data mais antiga.
	first := days[0]
	for _, day := range days[1:] {
		if day.conversions > first.conversions {
			first = day
		}
	}

	// Último toque: data com o maior total de conversões dentro dos últimos
	// 3 dias da janela; empate resolve para a data mais recente.
	windowStart := endDate.AddDate(0, 0, -(lastTouchWindowDays - 1))
	var last *dayBucket
	for _, day := range days {
		if day.date.Before(windowStart) {
			continue
		}
		if last == nil || day.conversions >= last.conversions {
			last = day
		}
	}
	if last == nil {
		last = days[len(days)-1]
	}

	credits := make(map[*dayBucket]float64)
	credits[first] += uShapedEdgeCredit
	credits[last] += uShapedEdgeCredit

	middle := make([]*dayBucket, 0, len(days))
	for _, day := range days {
		if day != first && day != last {
			middle = append(middle, day)
		}
	}
	for _, day := range middle {
		credits[day] += uShapedMiddleCredit / float64(len(middle))
	}

	// O crédito de cada data é repartido entre os canais pela fração de
	// conversões daquela data; dias sem conversões perdem a massa, que é
	// devolvida na normalização final.
	weights := make(map[string]float64)
	totalMass := 0.0
	for day, credit := range credits {
		if day.conversions <= 0 {
			continue
		}
		for channel, conversions := range day.byChannel {
			share := credit * float64(conversions) / float64(day.conversions)
			weights[channel] += share
			totalMass += share
		}
	}

	return normalizeWeights(weights, totalMass)
}

// dataDrivenWeights estima o crédito de cada canal pelo contrafactual
// leave-one-out: a receita total com todos os canais menos a receita total
// com o canal zerado. Como a remoção é feita canal a canal, o resultado
// independe da ordem de entrada dos registros. Créditos todos nulos caem no
// fallback linear.
func dataDrivenWeights(records []*domain.DailyChannelRecord, endDate time.Time) map[string]float64 {
	baseline := 0.0
	for _, r := range records {
		baseline += r.Revenue
	}

	raw := make(map[string]float64)
	totalRaw := 0.0
	for _, channel := range domain.Channels(records) {
		withoutChannel := 0.0
		for _, r := range records {
			if r.Channel == channel {
				continue
			}
			withoutChannel += r.Revenue
		}

		credit := math.Max(0, baseline-withoutChannel)
		raw[channel] = credit
		totalRaw += credit
	}

	if totalRaw == 0 {
		return decayedShareWeights(records, endDate, math.Inf(1))
	}

	return normalizeWeights(raw, totalRaw)
}

// normalizeWeights divide cada peso pela massa total, garantindo soma 1.
// Massa total nula devolve pesos zerados.
func normalizeWeights(weights map[string]float64, totalMass float64) map[string]float64 {
	normalized := make(map[string]float64, len(weights))
	if totalMass <= 0 {
		return normalized
	}

	for channel, weight := range weights {
		normalized[channel] = weight / totalMass
	}

	return normalized
}
