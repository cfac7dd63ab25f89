package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/attributing"
)

// AttributionSnapshotSyncConfig representa a configuração do agendador de
// snapshots de atribuição
type AttributionSnapshotSyncConfig struct {
	CronSchedule string
	LookbackDays int
	SyncEnabled  bool
}

// AttributionSnapshotSyncService materializa, uma vez por dia, o resultado
// dos quatro modelos de atribuição sobre a janela de lookback e grava um
// snapshot por (data, canal, modelo). O dashboard lê os snapshots em vez de
// recalcular a atribuição a cada acesso.
type AttributionSnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              AttributionSnapshotSyncConfig
	attributor          attributing.Attributor
	resultRepo          repository.AttributionResultRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewAttributionSnapshotSyncService(
	attributor attributing.Attributor,
	resultRepo repository.AttributionResultRepository,
	appConfig *config.Config,
) *AttributionSnapshotSyncService {
	syncConfig := AttributionSnapshotSyncConfig{
		CronSchedule: appConfig.AttributionSnapshotSync.CronSchedule,
		LookbackDays: appConfig.AttributionSnapshotSync.LookbackDays,
		SyncEnabled:  appConfig.AttributionSnapshotSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"lookback_days": syncConfig.LookbackDays,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de snapshots de atribuição carregada")

	return &AttributionSnapshotSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		attributor:  attributor,
		resultRepo:  resultRepo,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *AttributionSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots de atribuição desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots de atribuição")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAttributionSnapshots()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots de atribuição: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots de atribuição")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a sincronização fora do horário agendado
func (s *AttributionSnapshotSyncService) TriggerManualSync() {
	go s.syncAttributionSnapshots()
}

// GetStatus retorna o estado corrente do agendador
func (s *AttributionSnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"enabled":        s.config.SyncEnabled,
		"cron_schedule":  s.config.CronSchedule,
		"lookback_days":  s.config.LookbackDays,
		"running":        s.syncRunning,
		"last_started":   formatSyncTime(s.lastSyncStartedAt),
		"last_completed": formatSyncTime(s.lastSyncCompletedAt),
	}
}

// syncAttributionSnapshots roda os quatro modelos sobre a janela de lookback
// encerrada ontem e substitui o snapshot do dia, um registro por canal e
// modelo.
func (s *AttributionSnapshotSyncService) syncAttributionSnapshots() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots de atribuição já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	snapshotDate := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	startDate := snapshotDate.AddDate(0, 0, -s.config.LookbackDays+1)
	filters := &domain.PeriodFilters{StartDate: &startDate, EndDate: &snapshotDate}

	logrus.WithFields(logrus.Fields{
		"start_date":    startDate.Format(time.DateOnly),
		"snapshot_date": snapshotDate.Format(time.DateOnly),
	}).Info("Iniciando sincronização de snapshots de atribuição")

	for _, model := range domain.AllAttributionModels {
		result, err := s.attributor.Attribute(filters, model)
		if err != nil {
			logrus.WithError(err).WithField("model", model).Error("Erro ao calcular atribuição para snapshot")
			continue
		}

		if result.Empty {
			logrus.WithField("model", model).Info("Janela sem conversões, snapshot não gravado")
			continue
		}

		entries := make([]*domain.AttributionResultEntry, 0, len(result.Results))
		for _, r := range result.Results {
			entries = append(entries, &domain.AttributionResultEntry{
				Date:                  snapshotDate,
				Channel:               r.Channel,
				Model:                 model,
				AttributedConversions: r.AttributedConversions,
				AttributedRevenue:     r.AttributedRevenue,
			})
		}

		if err := s.resultRepo.ReplacePeriod(snapshotDate, snapshotDate, model, entries); err != nil {
			logrus.WithError(err).WithField("model", model).Error("Erro ao gravar snapshot de atribuição")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"model":    model,
			"channels": len(entries),
		}).Info("Snapshot de atribuição gravado")
	}

	logrus.Info("Sincronização de snapshots de atribuição concluída")
}

func formatSyncTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
