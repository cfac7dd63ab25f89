package attributing

import (
	"fmt"

	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func (s *Service) CompareModels(filters *domain.PeriodFilters) (*domain.ModelComparisonResponse, error) {
	records, err := s.fetchRecords(filters)
	if err != nil {
		return nil, err
	}

	return Compare(records, filters, s.cfg.Attribution.HalfLifeDays)
}

// Compare roda os quatro modelos sobre os mesmos registros e agrega, por
// canal, as estatísticas de dispersão do percentual de crédito entre modelos.
func Compare(
	records []*domain.DailyChannelRecord,
	filters *domain.PeriodFilters,
	halfLifeDays float64,
) (*domain.ModelComparisonResponse, error) {
	results := make(map[domain.AttributionModel]*domain.AttributionResponse, len(domain.AllAttributionModels))
	for _, model := range domain.AllAttributionModels {
		result, err := Compute(records, filters, model, halfLifeDays)
		if err != nil {
			return nil, err
		}
		results[model] = result
	}

	channels := domain.Channels(records)

	// Percentuais por canal na ordem de preferência dos modelos.
	percentages := make(map[string][]float64, len(channels))
	for _, channel := range channels {
		values := make([]float64, 0, len(domain.AllAttributionModels))
		for _, model := range domain.AllAttributionModels {
			values = append(values, channelPercentage(results[model], channel))
		}
		percentages[channel] = values
	}

	variance := make(map[string]*domain.ChannelVariance, len(channels))
	for _, channel := range channels {
		values := percentages[channel]
		variance[channel] = &domain.ChannelVariance{
			Min:      floats.Min(values),
			Max:      floats.Max(values),
			Mean:     utils.RoundWithTwoDecimalPlace(stat.Mean(values, nil)),
			Variance: utils.RoundWithTwoDecimalPlace(stat.PopVariance(values, nil)),
		}
	}

	recommended := recommendModel(percentages)

	return &domain.ModelComparisonResponse{
		Filters:          filters,
		Models:           results,
		ChannelVariance:  variance,
		RecommendedModel: recommended,
		Recommendation: fmt.Sprintf(
			"O modelo %s apresentou a atribuição mais estável entre os canais no período e é o recomendado",
			recommended,
		),
	}, nil
}

func channelPercentage(result *domain.AttributionResponse, channel string) float64 {
	for _, r := range result.Results {
		if r.Channel == channel {
			return r.Percentage
		}
	}
	return 0
}

// recommendModel escolhe o modelo mais estável: o de menor desvio quadrático
// médio em relação à média entre modelos, canal a canal. Empates seguem a
// ordem de preferência data_driven > u_shaped > time_decay > linear, que é a
// ordem de iteração de AllAttributionModels.
func recommendModel(percentages map[string][]float64) domain.AttributionModel {
	best := domain.AllAttributionModels[0]
	bestScore := stabilityScore(percentages, 0)

	for i, model := range domain.AllAttributionModels[1:] {
		score := stabilityScore(percentages, i+1)
		if score < bestScore-1e-9 {
			best = model
			bestScore = score
		}
	}

	return best
}

// stabilityScore mede o desvio quadrático médio do modelo na posição idx em
// relação à média entre modelos, sobre todos os canais.
func stabilityScore(percentages map[string][]float64, idx int) float64 {
	if len(percentages) == 0 {
		return 0
	}

	total := 0.0
	for _, values := range percentages {
		mean := stat.Mean(values, nil)
		deviation := values[idx] - mean
		total += deviation * deviation
	}

	return total / float64(len(percentages))
}
