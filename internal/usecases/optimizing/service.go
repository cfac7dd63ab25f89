package optimizing

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/internal/usecases/saturating"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// Banda morta de variação abaixo da qual a recomendação é manter o gasto.
const maintainBandRatio = 0.05

// Optimizer define a interface do otimizador de orçamento entre canais
type Optimizer interface {
	// OptimizeBudget redistribui o orçamento diário entre os canais da
	// janela maximizando a receita projetada pelas curvas de resposta
	OptimizeBudget(filters *domain.PeriodFilters, totalBudget float64, bounds map[string]domain.ChannelBounds) (*domain.AllocationPlan, error)
}

// AllocateOptions parametriza o water-filling.
type AllocateOptions struct {
	Increments    int
	MinIncrement  float64
	MaxIterations int
}

type Service struct {
	cfg       *config.Config
	repo      repository.MarketingDataRepository
	estimator saturating.Estimator
}

func NewService(cfg *config.Config, repo repository.MarketingDataRepository, estimator saturating.Estimator) Optimizer {
	return &Service{
		cfg:       cfg,
		repo:      repo,
		estimator: estimator,
	}
}

func (s *Service) allocateOptions() AllocateOptions {
	return AllocateOptions{
		Increments:    s.cfg.Optimizer.Increments,
		MinIncrement:  s.cfg.Optimizer.MinIncrement,
		MaxIterations: s.cfg.Optimizer.MaxIterations,
	}
}

func (s *Service) OptimizeBudget(
	filters *domain.PeriodFilters,
	totalBudget float64,
	bounds map[string]domain.ChannelBounds,
) (*domain.AllocationPlan, error) {
	curves, err := s.curvesForAllocation(filters)
	if err != nil {
		return nil, err
	}

	allocation, err := Allocate(curves, totalBudget, bounds, s.allocateOptions())
	if err != nil {
		return nil, err
	}

	return s.buildPlan(curves, allocation, totalBudget), nil
}

func (s *Service) curvesForAllocation(filters *domain.PeriodFilters) (map[string]*domain.ResponseCurve, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("janela de datas é obrigatória para otimização de orçamento")
	}

	records, err := s.repo.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros diários para otimização")
	}

	curves, fitErrors := s.estimator.FitCurves(records)
	for channel, fitErr := range fitErrors {
		logrus.WithError(fitErr).WithField("channel", channel).
			Warn("Canal sem curva ajustável, excluído da otimização")
	}

	if len(curves) == 0 {
		return nil, errors.New("nenhum canal com curva de resposta ajustável na janela informada")
	}

	return curves, nil
}

// Allocate distribui totalBudget entre os canais por water-filling: cada
// incremento vai para o canal com maior retorno marginal no nível de gasto
// corrente, até esgotar o orçamento ou todos os canais baterem no teto.
// A alocação parte dos mínimos das restrições e nunca ultrapassa orçamento
// nem tetos.
func Allocate(
	curves map[string]*domain.ResponseCurve,
	totalBudget float64,
	bounds map[string]domain.ChannelBounds,
	opts AllocateOptions,
) (map[string]float64, error) {
	if totalBudget < 0 {
		return nil, NewOptimizationError(ErrInvalidBudget, fmt.Sprintf("orçamento negativo: %.2f", totalBudget))
	}

	channels := make([]string, 0, len(curves))
	for channel := range curves {
		channels = append(channels, channel)
	}
	sort.Strings(channels)

	allocation := make(map[string]float64, len(channels))
	minsTotal := 0.0
	for _, channel := range channels {
		b := bounds[channel]
		if b.Min < 0 {
			return nil, NewOptimizationError(ErrInvalidBudget, fmt.Sprintf("mínimo negativo para o canal %s", channel))
		}
		if b.Max != nil && *b.Max < b.Min {
			return nil, NewOptimizationError(ErrInvalidBudget, fmt.Sprintf("mínimo acima do máximo para o canal %s", channel))
		}

		allocation[channel] = b.Min
		minsTotal += b.Min
	}

	if minsTotal > totalBudget {
		return nil, NewOptimizationError(
			ErrInvalidBudget,
			fmt.Sprintf("soma dos mínimos (%.2f) excede o orçamento (%.2f)", minsTotal, totalBudget),
		)
	}

	increments := opts.Increments
	if increments <= 0 {
		increments = 1000
	}
	minIncrement := opts.MinIncrement
	if minIncrement <= 0 {
		minIncrement = 1.0
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = increments
	}

	increment := math.Max(totalBudget/float64(increments), minIncrement)
	remaining := totalBudget - minsTotal

	for iteration := 0; remaining > 1e-9; iteration++ {
		if iteration >= maxIterations {
			return nil, NewOptimizationError(
				ErrIterationCeiling,
				fmt.Sprintf("%.2f não alocados após %d passos; aumente o incremento mínimo ou reduza o orçamento", remaining, maxIterations),
			)
		}

		best := ""
		bestReturn := math.Inf(-1)
		for _, channel := range channels {
			cap := channelCap(bounds[channel])
			if allocation[channel] >= cap {
				continue
			}

			marginal := curves[channel].MarginalReturn(allocation[channel])
			if marginal > bestReturn {
				best = channel
				bestReturn = marginal
			}
		}

		// Todos os canais no teto: o restante fica sem alocar.
		if best == "" {
			break
		}

		step := math.Min(increment, remaining)
		if cap := channelCap(bounds[best]); allocation[best]+step > cap {
			step = cap - allocation[best]
		}

		allocation[best] += step
		remaining -= step
	}

	return allocation, nil
}

func channelCap(b domain.ChannelBounds) float64 {
	if b.Max != nil {
		return *b.Max
	}
	return math.Inf(1)
}

func (s *Service) buildPlan(
	curves map[string]*domain.ResponseCurve,
	allocation map[string]float64,
	totalBudget float64,
) *domain.AllocationPlan {
	projectedRevenue := 0.0
	currentRevenue := 0.0
	currentSpendTotal := 0.0

	rounded := make(map[string]float64, len(allocation))
	for channel, spend := range allocation {
		curve := curves[channel]
		projectedRevenue += curve.Revenue(spend)
		currentRevenue += curve.Revenue(curve.CurrentDailySpend)
		currentSpendTotal += curve.CurrentDailySpend
		rounded[channel] = utils.RoundWithTwoDecimalPlace(spend)
	}

	revenueLift := projectedRevenue - currentRevenue

	planID, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar identificador do plano de alocação")
	}

	return &domain.AllocationPlan{
		ID:                  planID,
		TotalBudget:         totalBudget,
		OptimizedAllocation: rounded,
		ProjectedRevenue:    utils.RoundWithTwoDecimalPlace(projectedRevenue),
		CurrentRevenue:      utils.RoundWithTwoDecimalPlace(currentRevenue),
		RevenueLift:         utils.RoundWithTwoDecimalPlace(revenueLift),
		// Melhora de ROI em pontos percentuais: lift sobre o gasto corrente
		// total dos canais.
		ROIImprovement:  utils.RoundWithTwoDecimalPlace(utils.SafeDivide(revenueLift, currentSpendTotal) * 100),
		Recommendations: s.buildRecommendations(curves, allocation),
	}
}

// buildRecommendations deriva, canal a canal, a ação sugerida comparando o
// gasto recomendado com o gasto diário corrente. Variações dentro da banda
// morta viram "maintain".
func (s *Service) buildRecommendations(
	curves map[string]*domain.ResponseCurve,
	allocation map[string]float64,
) []*domain.Recommendation {
	threshold := s.cfg.Saturation.Threshold

	channels := make([]string, 0, len(allocation))
	for channel := range allocation {
		channels = append(channels, channel)
	}
	sort.Strings(channels)

	recommendations := make([]*domain.Recommendation, 0, len(channels))
	for _, channel := range channels {
		curve := curves[channel]
		current := curve.CurrentDailySpend
		recommended := allocation[channel]
		change := recommended - current
		changeRatio := math.Abs(utils.SafeDivide(change, current))

		action := domain.ActionMaintain
		if changeRatio > maintainBandRatio {
			if change > 0 {
				action = domain.ActionIncrease
			} else {
				action = domain.ActionDecrease
			}
		}

		priority := domain.PriorityLow
		status := curve.EfficiencyStatus(threshold)
		switch {
		case changeRatio > s.cfg.Optimizer.HighPriorityChangeRatio,
			status == domain.EfficiencyOverSaturated,
			status == domain.EfficiencyUnderInvested:
			priority = domain.PriorityHigh
		case changeRatio > s.cfg.Optimizer.MediumPriorityChangeRatio:
			priority = domain.PriorityMedium
		}

		recommendations = append(recommendations, &domain.Recommendation{
			Channel:          channel,
			Action:           action,
			CurrentSpend:     utils.RoundWithTwoDecimalPlace(current),
			RecommendedSpend: utils.RoundWithTwoDecimalPlace(recommended),
			ChangeAmount:     utils.RoundWithTwoDecimalPlace(change),
			ChangePercentage: utils.RoundWithTwoDecimalPlace(changeRatio * 100),
			Priority:         priority,
		})
	}

	return recommendations
}
