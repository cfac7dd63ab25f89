package attributing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const testHalfLife = 7.0

func day(n int) time.Time {
	return time.Date(2024, 6, n, 0, 0, 0, 0, time.UTC)
}

func record(n int, channel string, conversions int, revenue float64) *domain.DailyChannelRecord {
	return &domain.DailyChannelRecord{
		Date:        day(n),
		Channel:     channel,
		Spend:       100,
		Conversions: conversions,
		Revenue:     revenue,
	}
}

func periodFilters(start, end int) *domain.PeriodFilters {
	s := day(start)
	e := day(end)
	return &domain.PeriodFilters{StartDate: &s, EndDate: &e}
}

func weightSum(response *domain.AttributionResponse) float64 {
	total := 0.0
	for _, r := range response.Results {
		total += r.Weight
	}
	return total
}

func channelWeight(response *domain.AttributionResponse, channel string) float64 {
	for _, r := range response.Results {
		if r.Channel == channel {
			return r.Weight
		}
	}
	return 0
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		records  []*domain.DailyChannelRecord
		filters  *domain.PeriodFilters
		model    domain.AttributionModel
		validate func(t *testing.T, response *domain.AttributionResponse)
	}{
		{
			name: "Linear distribui o crédito proporcionalmente às conversões",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 60, 6000),
				record(1, "Meta Ads", 40, 4000),
			},
			filters: periodFilters(1, 1),
			model:   domain.ModelLinear,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				assert.False(t, response.Empty)
				assert.InDelta(t, 0.6, channelWeight(response, "Google Ads"), 1e-9)
				assert.InDelta(t, 0.4, channelWeight(response, "Meta Ads"), 1e-9)

				// Resultados ordenados por peso decrescente
				assert.Equal(t, "Google Ads", response.Results[0].Channel)
				assert.InDelta(t, 60.0, response.Results[0].Percentage, 1e-9)
				assert.InDelta(t, 60.0, response.Results[0].AttributedConversions, 1e-9)
				assert.InDelta(t, 6000.0, response.Results[0].AttributedRevenue, 1e-9)
			},
		},
		{
			name: "Canal único recebe 100% do crédito em qualquer modelo",
			records: []*domain.DailyChannelRecord{
				record(1, "Email", 10, 950),
				record(2, "Email", 20, 1900),
				record(3, "Email", 5, 475),
			},
			filters: periodFilters(1, 3),
			model:   domain.ModelUShaped,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				require.Len(t, response.Results, 1)
				assert.InDelta(t, 1.0, response.Results[0].Weight, 1e-6)
				assert.InDelta(t, 100.0, response.Results[0].Percentage, 1e-6)
			},
		},
		{
			name: "Janela sem conversões marca resposta como vazia com pesos zerados",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 0, 0),
				record(2, "TikTok", 0, 0),
			},
			filters: periodFilters(1, 2),
			model:   domain.ModelDataDriven,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				assert.True(t, response.Empty)
				require.Len(t, response.Results, 2)
				for _, r := range response.Results {
					assert.Zero(t, r.Weight)
					assert.Zero(t, r.Percentage)
				}
			},
		},
		{
			name: "Time decay favorece conversões recentes",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 50, 5000),
				record(10, "Meta Ads", 50, 5000),
			},
			filters: periodFilters(1, 10),
			model:   domain.ModelTimeDecay,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				assert.Greater(t,
					channelWeight(response, "Meta Ads"),
					channelWeight(response, "Google Ads"),
				)
				assert.InDelta(t, 1.0, weightSum(response), 1e-6)
			},
		},
		{
			name: "U-shaped concentra crédito no primeiro e último toque",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 100, 10000),
				record(2, "Meta Ads", 10, 1000),
				record(3, "TikTok", 50, 5000),
			},
			filters: periodFilters(1, 3),
			model:   domain.ModelUShaped,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				// O dia 1 é primeiro e último toque ao mesmo tempo (maior
				// conversão da janela e da janela de last-touch), acumulando
				// 80% do crédito; os demais dias repartem os 20% restantes.
				assert.InDelta(t, 0.8, channelWeight(response, "Google Ads"), 1e-6)
				assert.InDelta(t, 0.1, channelWeight(response, "Meta Ads"), 1e-6)
				assert.InDelta(t, 0.1, channelWeight(response, "TikTok"), 1e-6)
			},
		},
		{
			name: "U-shaped com menos de 3 datas distintas colapsa para o linear",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 30, 3000),
				record(2, "Meta Ads", 70, 7000),
			},
			filters: periodFilters(1, 2),
			model:   domain.ModelUShaped,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				assert.InDelta(t, 0.3, channelWeight(response, "Google Ads"), 1e-9)
				assert.InDelta(t, 0.7, channelWeight(response, "Meta Ads"), 1e-9)
			},
		},
		{
			name: "Data-driven sem receita cai no rateio linear",
			records: []*domain.DailyChannelRecord{
				record(1, "Google Ads", 25, 0),
				record(1, "Meta Ads", 75, 0),
			},
			filters: periodFilters(1, 1),
			model:   domain.ModelDataDriven,
			validate: func(t *testing.T, response *domain.AttributionResponse) {
				assert.InDelta(t, 0.25, channelWeight(response, "Google Ads"), 1e-9)
				assert.InDelta(t, 0.75, channelWeight(response, "Meta Ads"), 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := Compute(tt.records, tt.filters, tt.model, testHalfLife)
			require.NoError(t, err)
			tt.validate(t, response)
		})
	}
}

func TestComputeUnknownModel(t *testing.T) {
	_, err := Compute(nil, periodFilters(1, 1), domain.AttributionModel("last_click"), testHalfLife)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestComputeWeightsSumToOne(t *testing.T) {
	records := []*domain.DailyChannelRecord{
		record(1, "Google Ads", 37, 3145),
		record(2, "Meta Ads", 18, 1350),
		record(3, "Email", 45, 4275),
		record(4, "TikTok", 12, 780),
		record(5, "Google Ads", 29, 2465),
		record(5, "Affiliate", 51, 4080),
	}

	for _, model := range domain.AllAttributionModels {
		t.Run(string(model), func(t *testing.T) {
			response, err := Compute(records, periodFilters(1, 5), model, testHalfLife)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, weightSum(response), 1e-6)
		})
	}
}

func TestComputeOrderInvariance(t *testing.T) {
	records := []*domain.DailyChannelRecord{
		record(1, "Google Ads", 37, 3145),
		record(2, "Meta Ads", 18, 1350),
		record(3, "Email", 45, 4275),
		record(4, "TikTok", 12, 780),
		record(5, "Affiliate", 51, 4080),
	}

	shuffled := make([]*domain.DailyChannelRecord, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, model := range domain.AllAttributionModels {
		t.Run(string(model), func(t *testing.T) {
			original, err := Compute(records, periodFilters(1, 5), model, testHalfLife)
			require.NoError(t, err)

			reordered, err := Compute(shuffled, periodFilters(1, 5), model, testHalfLife)
			require.NoError(t, err)

			for _, r := range original.Results {
				assert.InDelta(t, r.Weight, channelWeight(reordered, r.Channel), 1e-9)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	records := []*domain.DailyChannelRecord{
		record(1, "Google Ads", 37, 3145),
		record(2, "Meta Ads", 18, 1350),
		record(3, "Email", 45, 4275),
		record(4, "TikTok", 12, 780),
		record(5, "Affiliate", 51, 4080),
	}

	comparison, err := Compare(records, periodFilters(1, 5), testHalfLife)
	require.NoError(t, err)

	assert.Len(t, comparison.Models, len(domain.AllAttributionModels))
	assert.Len(t, comparison.ChannelVariance, 5)
	assert.True(t, comparison.RecommendedModel.Valid())
	assert.Contains(t, comparison.Recommendation, string(comparison.RecommendedModel))

	for channel, variance := range comparison.ChannelVariance {
		assert.GreaterOrEqual(t, variance.Max, variance.Min, "canal %s", channel)
		assert.GreaterOrEqual(t, variance.Variance, 0.0, "canal %s", channel)
	}
}

func TestCompareSingleChannelHasZeroVariance(t *testing.T) {
	records := []*domain.DailyChannelRecord{
		record(1, "Email", 10, 950),
		record(2, "Email", 20, 1900),
		record(3, "Email", 15, 1425),
	}

	comparison, err := Compare(records, periodFilters(1, 3), testHalfLife)
	require.NoError(t, err)

	variance := comparison.ChannelVariance["Email"]
	require.NotNil(t, variance)
	assert.InDelta(t, 0.0, variance.Variance, 1e-9)
	assert.InDelta(t, 100.0, variance.Mean, 1e-9)

	// Com todos os modelos empatados, vence o primeiro da ordem de
	// preferência.
	assert.Equal(t, domain.ModelDataDriven, comparison.RecommendedModel)
}

func TestServiceAttribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMarketingDataRepository(ctrl)
	cfg := &config.Config{Attribution: config.Attribution{HalfLifeDays: testHalfLife}}
	service := NewService(cfg, mockRepo)

	filters := periodFilters(1, 5)
	mockRepo.EXPECT().
		GetByDateRange(*filters.StartDate, *filters.EndDate).
		Return([]*domain.DailyChannelRecord{
			record(1, "Google Ads", 60, 6000),
			record(5, "Meta Ads", 40, 4000),
		}, nil)

	response, err := service.Attribute(filters, domain.ModelLinear)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, weightSum(response), 1e-6)
	assert.Len(t, response.Results, 2)
}

func TestServiceAttributeRequiresPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMarketingDataRepository(ctrl)
	cfg := &config.Config{Attribution: config.Attribution{HalfLifeDays: testHalfLife}}
	service := NewService(cfg, mockRepo)

	_, err := service.Attribute(&domain.PeriodFilters{}, domain.ModelLinear)
	require.Error(t, err)
}
