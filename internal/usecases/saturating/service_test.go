package saturating

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Saturation: config.Saturation{
			Threshold:           0.2,
			ExtrapolationFactor: 2.0,
			MaxFitIterations:    200,
			MinRSquared:         0.1,
			CurveSamples:        20,
		},
	}
}

func testFitOptions() FitOptions {
	return FitOptions{
		MaxIterations:       200,
		MinRSquared:         0.1,
		ExtrapolationFactor: 2.0,
	}
}

func channelRecord(n int, channel string, spend, revenue float64) *domain.DailyChannelRecord {
	return &domain.DailyChannelRecord{
		Date:    time.Date(2024, 6, n, 0, 0, 0, 0, time.UTC),
		Channel: channel,
		Spend:   spend,
		Revenue: revenue,
	}
}

// exponentialRecords gera pares (spend, revenue) exatos sobre a curva
// revenue = a·(1 − e^(−b·spend)).
func exponentialRecords(channel string, a, b float64, spends []float64) []*domain.DailyChannelRecord {
	records := make([]*domain.DailyChannelRecord, 0, len(spends))
	for i, spend := range spends {
		revenue := a * (1 - math.Exp(-b*spend))
		records = append(records, channelRecord(i+1, channel, spend, revenue))
	}
	return records
}

func TestFit(t *testing.T) {
	tests := []struct {
		name     string
		records  []*domain.DailyChannelRecord
		wantErr  error
		validate func(t *testing.T, curve *domain.ResponseCurve)
	}{
		{
			name: "Apenas um dia com gasto positivo - dados insuficientes",
			records: []*domain.DailyChannelRecord{
				channelRecord(1, "TikTok", 500, 800),
				channelRecord(2, "TikTok", 0, 0),
			},
			wantErr: ErrInsufficientData,
		},
		{
			name: "Nenhum dia com gasto positivo - dados insuficientes",
			records: []*domain.DailyChannelRecord{
				channelRecord(1, "Email", 0, 120),
				channelRecord(2, "Email", 0, 95),
			},
			wantErr: ErrInsufficientData,
		},
		{
			name: "Dados exatos sobre a exponencial - ajuste aceito e parâmetros recuperados",
			records: exponentialRecords("Google Ads", 50000, 0.0005,
				[]float64{500, 1000, 1500, 2000, 2500, 3000, 3500, 4000, 4500, 5000}),
			validate: func(t *testing.T, curve *domain.ResponseCurve) {
				assert.Equal(t, domain.CurveExponential, curve.Kind)
				assert.False(t, curve.LowConfidence)
				assert.Greater(t, curve.RSquared, 0.95)
				assert.InEpsilon(t, 50000.0, curve.A, 0.2)
				assert.InEpsilon(t, 0.0005, curve.B, 0.5)
			},
		},
		{
			name: "Receita nula em todos os dias - fallback linear com ROAS zero",
			records: []*domain.DailyChannelRecord{
				channelRecord(1, "Affiliate", 200, 0),
				channelRecord(2, "Affiliate", 400, 0),
				channelRecord(3, "Affiliate", 600, 0),
			},
			validate: func(t *testing.T, curve *domain.ResponseCurve) {
				assert.Equal(t, domain.CurveLinear, curve.Kind)
				assert.True(t, curve.LowConfidence)
				assert.Zero(t, curve.K)
			},
		},
		{
			name: "Receita sem relação com gasto - fallback linear de baixa confiança",
			records: []*domain.DailyChannelRecord{
				channelRecord(1, "Meta Ads", 100, 9000),
				channelRecord(2, "Meta Ads", 5000, 50),
				channelRecord(3, "Meta Ads", 100, 45),
				channelRecord(4, "Meta Ads", 5000, 8800),
			},
			validate: func(t *testing.T, curve *domain.ResponseCurve) {
				assert.Equal(t, domain.CurveLinear, curve.Kind)
				assert.True(t, curve.LowConfidence)
				assert.InDelta(t, (9000.0+50+45+8800)/(100.0+5000+100+5000), curve.K, 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := Fit(tt.records[0].Channel, tt.records, testFitOptions())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, curve)
			tt.validate(t, curve)
		})
	}
}

func TestFitCurveMetadata(t *testing.T) {
	records := []*domain.DailyChannelRecord{
		channelRecord(1, "Google Ads", 0, 0),
		channelRecord(2, "Google Ads", 800, 12000),
		channelRecord(3, "Google Ads", 1200, 16000),
		channelRecord(4, "Google Ads", 2000, 21000),
	}

	curve, err := Fit("Google Ads", records, testFitOptions())
	require.NoError(t, err)

	assert.InDelta(t, 800.0, curve.SpendMin, 1e-9)
	assert.InDelta(t, 2000.0, curve.SpendMax, 1e-9)
	assert.InDelta(t, 4000.0, curve.DomainMax, 1e-9)

	// Dias de gasto zero contam nas médias, mas não no ajuste
	assert.Equal(t, 3, curve.FittedDays)
	assert.InDelta(t, 1000.0, curve.AvgDailySpend, 1e-9)
	assert.InDelta(t, 1000.0, curve.CurrentDailySpend, 1e-9)
}

func TestFitRevenueIsMonotonic(t *testing.T) {
	records := exponentialRecords("Google Ads", 30000, 0.001,
		[]float64{250, 500, 750, 1000, 1500, 2000, 2500, 3000})

	curve, err := Fit("Google Ads", records, testFitOptions())
	require.NoError(t, err)

	previous := curve.Revenue(0)
	for spend := 100.0; spend <= curve.DomainMax; spend += 100 {
		revenue := curve.Revenue(spend)
		assert.GreaterOrEqual(t, revenue, previous, "gasto %.0f", spend)
		previous = revenue
	}
}

func TestFitMarginalReturnIsStrictlyDecreasing(t *testing.T) {
	records := exponentialRecords("Google Ads", 30000, 0.001,
		[]float64{250, 500, 750, 1000, 1500, 2000, 2500, 3000})

	curve, err := Fit("Google Ads", records, testFitOptions())
	require.NoError(t, err)
	require.Equal(t, domain.CurveExponential, curve.Kind)

	previous := curve.MarginalReturn(0)
	for spend := 100.0; spend <= curve.DomainMax; spend += 100 {
		marginal := curve.MarginalReturn(spend)
		assert.Less(t, marginal, previous, "gasto %.0f", spend)
		previous = marginal
	}
}

func TestFitCurves(t *testing.T) {
	service := &Service{cfg: testConfig()}

	records := exponentialRecords("Google Ads", 50000, 0.0005,
		[]float64{500, 1000, 1500, 2000, 2500, 3000})
	records = append(records, channelRecord(1, "TikTok", 300, 450))

	curves, fitErrors := service.FitCurves(records)

	require.Len(t, curves, 1)
	require.Contains(t, curves, "Google Ads")
	assert.Equal(t, domain.CurveExponential, curves["Google Ads"].Kind)

	require.Len(t, fitErrors, 1)
	assert.ErrorIs(t, fitErrors["TikTok"], ErrInsufficientData)
}

func TestServiceAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMarketingDataRepository(ctrl)
	service := NewService(testConfig(), mockRepo)

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	filters := &domain.PeriodFilters{StartDate: &start, EndDate: &end}

	records := exponentialRecords("Google Ads", 50000, 0.0005,
		[]float64{500, 1000, 1500, 2000, 2500, 3000})
	records = append(records, channelRecord(1, "TikTok", 300, 450))

	mockRepo.EXPECT().GetByDateRange(start, end).Return(records, nil)

	analysis, err := service.Analyze(filters)
	require.NoError(t, err)

	require.Contains(t, analysis.Channels, "Google Ads")
	channel := analysis.Channels["Google Ads"]
	assert.Greater(t, channel.SaturationPoint, 0.0)
	assert.Len(t, channel.MarginalReturnsCurve, 20)
	assert.Contains(t,
		[]string{domain.EfficiencyUnderInvested, domain.EfficiencyEfficient, domain.EfficiencyOverSaturated},
		channel.EfficiencyStatus,
	)

	// Canal sem dados suficientes é reportado, nunca omitido em silêncio
	require.Contains(t, analysis.Skipped, "TikTok")
	assert.Contains(t, analysis.Skipped["TikTok"], "dados insuficientes")
}

func TestServiceAnalyzeRequiresPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockMarketingDataRepository(ctrl)
	service := NewService(testConfig(), mockRepo)

	_, err := service.Analyze(nil)
	require.Error(t, err)

	_, err = service.Analyze(&domain.PeriodFilters{})
	require.Error(t, err)
}
