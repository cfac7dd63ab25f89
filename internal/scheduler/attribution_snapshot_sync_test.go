package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository/mocks"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/attributing"
	"go.uber.org/mock/gomock"
)

func newSyncService(
	marketingDataRepo *mocks.MockMarketingDataRepository,
	resultRepo *mocks.MockAttributionResultRepository,
	lookbackDays int,
) *AttributionSnapshotSyncService {
	cfg := &config.Config{
		Attribution: config.Attribution{HalfLifeDays: 7.0},
	}

	return &AttributionSnapshotSyncService{
		config: AttributionSnapshotSyncConfig{
			CronSchedule: "0 3 * * *",
			LookbackDays: lookbackDays,
			SyncEnabled:  true,
		},
		attributor: attributing.NewService(cfg, marketingDataRepo),
		resultRepo: resultRepo,
	}
}

func syncRecords(base time.Time) []*domain.DailyChannelRecord {
	records := make([]*domain.DailyChannelRecord, 0, 10)
	for i := 0; i < 5; i++ {
		d := base.AddDate(0, 0, -i)
		records = append(records,
			&domain.DailyChannelRecord{Date: d, Channel: "Google Ads", Spend: 1000, Conversions: 30 + i, Revenue: 2500},
			&domain.DailyChannelRecord{Date: d, Channel: "Meta Ads", Spend: 600, Conversions: 20, Revenue: 1500},
		)
	}
	return records
}

func TestSyncAttributionSnapshots(t *testing.T) {
	tests := []struct {
		name  string
		setup func(marketingDataRepo *mocks.MockMarketingDataRepository, resultRepo *mocks.MockAttributionResultRepository)
	}{
		{
			name: "Janela com conversões - grava um snapshot por modelo",
			setup: func(marketingDataRepo *mocks.MockMarketingDataRepository, resultRepo *mocks.MockAttributionResultRepository) {
				marketingDataRepo.EXPECT().
					GetByDateRange(gomock.Any(), gomock.Any()).
					DoAndReturn(func(start, end time.Time) ([]*domain.DailyChannelRecord, error) {
						// Janela de lookback de 30 dias encerrada ontem
						assert.InDelta(t, 29.0, end.Sub(start).Hours()/24, 0.01)
						return syncRecords(end), nil
					}).
					Times(len(domain.AllAttributionModels))

				resultRepo.EXPECT().
					ReplacePeriod(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(start, end time.Time, model domain.AttributionModel, entries []*domain.AttributionResultEntry) error {
						assert.Equal(t, start, end)
						assert.True(t, model.Valid())
						require.Len(t, entries, 2)
						for _, entry := range entries {
							assert.Equal(t, start, entry.Date)
							assert.Equal(t, model, entry.Model)
							assert.Greater(t, entry.AttributedConversions, 0.0)
						}
						return nil
					}).
					Times(len(domain.AllAttributionModels))
			},
		},
		{
			name: "Janela sem conversões - nenhum snapshot gravado",
			setup: func(marketingDataRepo *mocks.MockMarketingDataRepository, resultRepo *mocks.MockAttributionResultRepository) {
				marketingDataRepo.EXPECT().
					GetByDateRange(gomock.Any(), gomock.Any()).
					Return([]*domain.DailyChannelRecord{
						{Date: time.Now(), Channel: "Google Ads", Spend: 500, Conversions: 0},
					}, nil).
					Times(len(domain.AllAttributionModels))

				// ReplacePeriod nunca é chamado
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			marketingDataRepo := mocks.NewMockMarketingDataRepository(ctrl)
			resultRepo := mocks.NewMockAttributionResultRepository(ctrl)
			tt.setup(marketingDataRepo, resultRepo)

			service := newSyncService(marketingDataRepo, resultRepo, 30)
			service.syncAttributionSnapshots()
		})
	}
}

func TestSyncSkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	marketingDataRepo := mocks.NewMockMarketingDataRepository(ctrl)
	resultRepo := mocks.NewMockAttributionResultRepository(ctrl)

	service := newSyncService(marketingDataRepo, resultRepo, 30)

	// Com a flag ligada, nenhum repositório deve ser consultado
	service.syncRunning = true
	service.syncAttributionSnapshots()

	assert.True(t, service.syncRunning)
}

func TestGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newSyncService(
		mocks.NewMockMarketingDataRepository(ctrl),
		mocks.NewMockAttributionResultRepository(ctrl),
		30,
	)

	status := service.GetStatus()

	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, "0 3 * * *", status["cron_schedule"])
	assert.Equal(t, 30, status["lookback_days"])
	assert.Equal(t, false, status["running"])
	assert.Equal(t, "", status["last_started"])
	assert.Equal(t, "", status["last_completed"])
}
