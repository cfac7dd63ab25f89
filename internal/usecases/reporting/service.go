package reporting

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// Quantidade de dias destacados como melhores do período no detalhe de canal.
const bestDaysLimit = 5

// Reporter define a interface dos relatórios agregados de marketing
type Reporter interface {
	// Overview agrega gasto, receita e conversões do período, com a variação
	// frente ao período anterior de mesma duração
	Overview(filters *domain.PeriodFilters) (*domain.OverviewReport, error)

	// ChannelPerformance detalha a série diária e as campanhas ativas de um
	// canal no período
	ChannelPerformance(channel string, filters *domain.PeriodFilters) (*domain.ChannelPerformanceReport, error)
}

type Service struct {
	marketingDataRepo  repository.MarketingDataRepository
	externalFactorRepo repository.ExternalFactorRepository
	campaignRepo       repository.CampaignRepository
}

func NewService(
	marketingDataRepo repository.MarketingDataRepository,
	externalFactorRepo repository.ExternalFactorRepository,
	campaignRepo repository.CampaignRepository,
) Reporter {
	return &Service{
		marketingDataRepo:  marketingDataRepo,
		externalFactorRepo: externalFactorRepo,
		campaignRepo:       campaignRepo,
	}
}

func (s *Service) Overview(filters *domain.PeriodFilters) (*domain.OverviewReport, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("janela de datas é obrigatória para o relatório de visão geral")
	}

	records, err := s.marketingDataRepo.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros diários para o relatório")
	}

	report := &domain.OverviewReport{
		Filters:  filters,
		Channels: buildChannelMetrics(records),
	}

	for _, c := range report.Channels {
		report.TotalSpend += c.Spend
		report.TotalRevenue += c.Revenue
		report.TotalConversions += c.Conversions
	}
	report.ROAS = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(report.TotalRevenue, report.TotalSpend))
	report.TotalSpend = utils.RoundWithTwoDecimalPlace(report.TotalSpend)
	report.TotalRevenue = utils.RoundWithTwoDecimalPlace(report.TotalRevenue)

	comparison, err := s.buildPeriodComparison(filters, report)
	if err != nil {
		// A comparação é acessória: falha vira log, não derruba o relatório.
		logrus.WithError(err).Warn("Não foi possível calcular a comparação com o período anterior")
	} else {
		report.PeriodComparison = comparison
	}

	factors, err := s.externalFactorRepo.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível buscar fatores externos do período")
	} else {
		report.HolidayCount, report.AvgSeasonality = summarizeExternalFactors(factors)
	}

	return report, nil
}

func (s *Service) ChannelPerformance(channel string, filters *domain.PeriodFilters) (*domain.ChannelPerformanceReport, error) {
	if channel == "" {
		return nil, errors.New("canal é obrigatório para o relatório de performance")
	}
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("janela de datas é obrigatória para o relatório de performance")
	}

	records, err := s.marketingDataRepo.GetByChannelAndDateRange(channel, *filters.StartDate, *filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar a série diária do canal")
	}

	report := &domain.ChannelPerformanceReport{
		Channel:    channel,
		Filters:    filters,
		TimeSeries: buildTimeSeries(records),
	}

	for _, r := range records {
		report.TotalSpend += r.Spend
		report.TotalRevenue += r.Revenue
	}
	report.ROAS = utils.RoundWithTwoDecimalPlace(utils.SafeDivide(report.TotalRevenue, report.TotalSpend))
	if len(records) > 0 {
		report.AvgDailySpend = utils.RoundWithTwoDecimalPlace(report.TotalSpend / float64(len(records)))
	}
	report.TotalSpend = utils.RoundWithTwoDecimalPlace(report.TotalSpend)
	report.TotalRevenue = utils.RoundWithTwoDecimalPlace(report.TotalRevenue)
	report.CurrentDailySpend = currentDailySpend(report.TimeSeries)
	report.BestDays = bestDays(report.TimeSeries, bestDaysLimit)

	campaigns, err := s.campaignRepo.GetActiveByChannel(channel, *filters.EndDate)
	if err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("Não foi possível buscar campanhas ativas do canal")
	} else {
		report.ActiveCampaigns = campaigns
	}

	return report, nil
}

// buildPeriodComparison compara o período pedido com a janela imediatamente
// anterior de mesma duração.
func (s *Service) buildPeriodComparison(filters *domain.PeriodFilters, current *domain.OverviewReport) (*domain.PeriodComparison, error) {
	duration := filters.EndDate.Sub(*filters.StartDate)
	previousEnd := filters.StartDate.AddDate(0, 0, -1)
	previousStart := previousEnd.Add(-duration)

	records, err := s.marketingDataRepo.GetByDateRange(previousStart, previousEnd)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros do período anterior")
	}

	previousSpend := 0.0
	previousRevenue := 0.0
	for _, r := range records {
		previousSpend += r.Spend
		previousRevenue += r.Revenue
	}
	previousROAS := utils.SafeDivide(previousRevenue, previousSpend)

	return &domain.PeriodComparison{
		SpendChange:   domain.CalculateChange(previousSpend, current.TotalSpend),
		RevenueChange: domain.CalculateChange(previousRevenue, current.TotalRevenue),
		ROASChange:    domain.CalculateChange(previousROAS, current.ROAS),
	}, nil
}

func buildChannelMetrics(records []*domain.DailyChannelRecord) []*domain.ChannelMetrics {
	totals := domain.TotalsByChannel(records)

	metrics := make([]*domain.ChannelMetrics, 0, len(totals))
	for _, channel := range domain.Channels(records) {
		t := totals[channel]
		metrics = append(metrics, &domain.ChannelMetrics{
			Name:        channel,
			Spend:       utils.RoundWithTwoDecimalPlace(t.Spend),
			Revenue:     utils.RoundWithTwoDecimalPlace(t.Revenue),
			Conversions: t.Conversions,
			Clicks:      t.Clicks,
			Impressions: t.Impressions,
			ROAS:        utils.RoundWithTwoDecimalPlace(utils.SafeDivide(t.Revenue, t.Spend)),
			CTR:         utils.RoundWithTwoDecimalPlace(utils.SafeDivide(float64(t.Clicks), float64(t.Impressions)) * 100),
		})
	}

	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Spend > metrics[j].Spend })

	return metrics
}

func buildTimeSeries(records []*domain.DailyChannelRecord) []*domain.DailyPoint {
	points := make([]*domain.DailyPoint, 0, len(records))
	for _, r := range records {
		points = append(points, &domain.DailyPoint{
			Date:        r.Date,
			Spend:       r.Spend,
			Revenue:     r.Revenue,
			Conversions: r.Conversions,
			ROAS:        utils.RoundWithTwoDecimalPlace(utils.SafeDivide(r.Revenue, r.Spend)),
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return points
}

// currentDailySpend é a média de gasto dos últimos 7 pontos da série.
func currentDailySpend(points []*domain.DailyPoint) float64 {
	if len(points) == 0 {
		return 0
	}

	window := points
	if len(window) > 7 {
		window = window[len(window)-7:]
	}

	total := 0.0
	for _, p := range window {
		total += p.Spend
	}

	return utils.RoundWithTwoDecimalPlace(total / float64(len(window)))
}

// bestDays devolve os n dias de maior receita do período, em ordem
// decrescente de receita.
func bestDays(points []*domain.DailyPoint, n int) []*domain.DailyPoint {
	ranked := make([]*domain.DailyPoint, len(points))
	copy(ranked, points)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Date.Before(ranked[j].Date)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

func summarizeExternalFactors(factors []*domain.ExternalFactor) (int, float64) {
	if len(factors) == 0 {
		return 0, 0
	}

	holidays := 0
	seasonality := 0.0
	for _, f := range factors {
		if f.IsHoliday {
			holidays++
		}
		seasonality += f.SeasonalityIndex
	}

	return holidays, utils.RoundWithTwoDecimalPlace(seasonality / float64(len(factors)))
}

// Janela padrão dos relatórios quando o cliente não informa datas.
func DefaultFilters(days int, now time.Time) *domain.PeriodFilters {
	end := now.Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days+1)
	return &domain.PeriodFilters{StartDate: &start, EndDate: &end}
}
