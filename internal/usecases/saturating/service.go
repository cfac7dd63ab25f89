package saturating

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/mmm-engine-api/infrastructure/repository"
	"github.com/vfg2006/mmm-engine-api/internal/config"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
	"github.com/vfg2006/mmm-engine-api/pkg/utils"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Dias considerados no cálculo do gasto diário corrente.
const currentSpendWindowDays = 7

// Penalidade devolvida ao solver para parâmetros fora do domínio (a, b > 0).
const outOfDomainPenalty = 1e20

// Estimator define a interface do estimador de saturação por canal
type Estimator interface {
	// Analyze ajusta a curva de resposta de cada canal da janela e deriva
	// ponto de saturação, status de eficiência e a curva de retorno marginal
	Analyze(filters *domain.PeriodFilters) (*domain.SaturationAnalysisResponse, error)

	// FitCurves ajusta as curvas de resposta de todos os canais presentes
	// nos registros; canais sem dados suficientes voltam no mapa de erros
	FitCurves(records []*domain.DailyChannelRecord) (map[string]*domain.ResponseCurve, map[string]error)
}

// FitOptions parametriza o ajuste de mínimos quadrados.
type FitOptions struct {
	MaxIterations       int
	MinRSquared         float64
	ExtrapolationFactor float64
}

type Service struct {
	cfg  *config.Config
	repo repository.MarketingDataRepository
}

func NewService(cfg *config.Config, repo repository.MarketingDataRepository) Estimator {
	return &Service{
		cfg:  cfg,
		repo: repo,
	}
}

func (s *Service) fitOptions() FitOptions {
	return FitOptions{
		MaxIterations:       s.cfg.Saturation.MaxFitIterations,
		MinRSquared:         s.cfg.Saturation.MinRSquared,
		ExtrapolationFactor: s.cfg.Saturation.ExtrapolationFactor,
	}
}

func (s *Service) Analyze(filters *domain.PeriodFilters) (*domain.SaturationAnalysisResponse, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, errors.New("janela de datas é obrigatória para análise de saturação")
	}

	records, err := s.repo.GetByDateRange(*filters.StartDate, *filters.EndDate)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar registros diários para análise de saturação")
	}

	curves, fitErrors := s.FitCurves(records)

	response := &domain.SaturationAnalysisResponse{
		Filters:  filters,
		Channels: make(map[string]*domain.ChannelSaturation, len(curves)),
		Skipped:  make(map[string]string),
	}

	for channel, curve := range curves {
		response.Channels[channel] = s.analyzeCurve(curve)
	}

	for channel, fitErr := range fitErrors {
		logrus.WithError(fitErr).WithField("channel", channel).Warn("Canal ignorado na análise de saturação")
		response.Skipped[channel] = fitErr.Error()
	}

	return response, nil
}

// FitCurves ajusta cada canal em uma goroutine própria: não há dependência
// entre canais, apenas o mapa de saída é protegido por mutex.
func (s *Service) FitCurves(records []*domain.DailyChannelRecord) (map[string]*domain.ResponseCurve, map[string]error) {
	opts := s.fitOptions()
	grouped := groupByChannel(records)

	curves := make(map[string]*domain.ResponseCurve, len(grouped))
	fitErrors := make(map[string]error)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for channel, channelRecords := range grouped {
		wg.Add(1)
		go func(channel string, channelRecords []*domain.DailyChannelRecord) {
			defer wg.Done()

			curve, err := Fit(channel, channelRecords, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fitErrors[channel] = err
				return
			}
			curves[channel] = curve
		}(channel, channelRecords)
	}

	wg.Wait()

	return curves, fitErrors
}

func (s *Service) analyzeCurve(curve *domain.ResponseCurve) *domain.ChannelSaturation {
	threshold := s.cfg.Saturation.Threshold
	samples := s.cfg.Saturation.CurveSamples
	if samples < 2 {
		samples = 20
	}

	saturation := curve.SaturationPoint(threshold)

	// Amostragem da curva de retorno marginal em [0, 2×ponto de saturação]
	// para plotagem pela camada de apresentação.
	points := make([]domain.MarginalReturnSample, 0, samples)
	maxSpend := 2 * saturation
	for i := 0; i < samples; i++ {
		spend := maxSpend * float64(i) / float64(samples-1)
		points = append(points, domain.MarginalReturnSample{
			Spend:        utils.RoundWithTwoDecimalPlace(spend),
			MarginalROAS: utils.RoundWithTwoDecimalPlace(curve.MarginalReturn(spend)),
		})
	}

	return &domain.ChannelSaturation{
		Channel:              curve.Channel,
		SaturationPoint:      utils.RoundWithTwoDecimalPlace(saturation),
		CurrentSpend:         utils.RoundWithTwoDecimalPlace(curve.CurrentDailySpend),
		AvgDailySpend:        utils.RoundWithTwoDecimalPlace(curve.AvgDailySpend),
		EfficiencyStatus:     curve.EfficiencyStatus(threshold),
		LowConfidence:        curve.LowConfidence,
		RSquared:             curve.RSquared,
		MarginalReturnsCurve: points,
	}
}

// Fit ajusta revenue = a·(1 − e^(−b·spend)) por mínimos quadrados não
// lineares sobre os pares diários (spend, revenue) do canal. Dias com gasto
// zero ficam fora do ajuste mas seguem contando para as médias de gasto.
// Ajustes rejeitados (b ≤ 0, R² abaixo do mínimo ou divergência) caem no
// fallback linear de ROAS constante, marcado como baixa confiança.
func Fit(channel string, records []*domain.DailyChannelRecord, opts FitOptions) (*domain.ResponseCurve, error) {
	spends := make([]float64, 0, len(records))
	revenues := make([]float64, 0, len(records))

	totalSpend := 0.0
	totalRevenue := 0.0
	spendMin := math.Inf(1)
	spendMax := 0.0
	maxRevenue := 0.0

	for _, r := range records {
		totalSpend += r.Spend
		totalRevenue += r.Revenue

		if r.Spend <= 0 {
			continue
		}

		spends = append(spends, r.Spend)
		revenues = append(revenues, r.Revenue)
		spendMin = math.Min(spendMin, r.Spend)
		spendMax = math.Max(spendMax, r.Spend)
		maxRevenue = math.Max(maxRevenue, r.Revenue)
	}

	if len(spends) < 2 {
		return nil, NewSaturationError(
			ErrInsufficientData,
			channel,
			fmt.Sprintf("%d dia(s) com gasto positivo, mínimo 2", len(spends)),
		)
	}

	extrapolation := opts.ExtrapolationFactor
	if extrapolation <= 1 {
		extrapolation = 2.0
	}

	curve := &domain.ResponseCurve{
		Channel:           channel,
		SpendMin:          spendMin,
		SpendMax:          spendMax,
		DomainMax:         spendMax * extrapolation,
		CurrentDailySpend: recentMeanSpend(records, currentSpendWindowDays),
		AvgDailySpend:     totalSpend / float64(len(records)),
		FittedDays:        len(spends),
	}

	a, b, fitErr := solveLeastSquares(spends, revenues, maxRevenue, totalSpend, opts.MaxIterations)

	if fitErr == nil {
		rsq := rSquared(spends, revenues, func(s float64) float64 {
			return a * (1 - math.Exp(-b*s))
		})

		if a > 0 && b > 0 && rsq >= opts.MinRSquared {
			curve.Kind = domain.CurveExponential
			curve.A = a
			curve.B = b
			curve.RSquared = rsq
			return curve, nil
		}
	} else {
		logrus.WithError(fitErr).WithField("channel", channel).Debug("Ajuste exponencial divergiu, usando fallback linear")
	}

	// Fallback de ROAS constante: revenue = k·spend com k derivado dos
	// totais da janela. Nunca descartado silenciosamente.
	k := utils.SafeDivide(totalRevenue, totalSpend)
	curve.Kind = domain.CurveLinear
	curve.K = k
	curve.LowConfidence = true
	curve.RSquared = rSquared(spends, revenues, func(s float64) float64 { return k * s })

	return curve, nil
}

// solveLeastSquares minimiza a soma dos quadrados dos resíduos com
// Nelder-Mead. Chute inicial: a = 1,5× maior receita observada,
// b = 1/gasto médio. Parâmetros não positivos recebem penalidade para
// manter o solver dentro do domínio.
func solveLeastSquares(spends, revenues []float64, maxRevenue, totalSpend float64, maxIterations int) (float64, float64, error) {
	if maxIterations <= 0 {
		maxIterations = 200
	}

	meanSpend := totalSpend / float64(len(spends))
	if meanSpend <= 0 {
		meanSpend = 1
	}

	x0 := []float64{1.5 * maxRevenue, 1 / meanSpend}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			a, b := x[0], x[1]
			if a <= 0 || b <= 0 {
				return outOfDomainPenalty
			}

			sse := 0.0
			for i, s := range spends {
				residual := revenues[i] - a*(1-math.Exp(-b*s))
				sse += residual * residual
			}
			return sse
		},
	}

	settings := &optimize.Settings{
		MajorIterations: maxIterations,
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return 0, 0, errors.Wrap(ErrFitDivergence, err.Error())
	}
	if result == nil || len(result.X) != 2 {
		return 0, 0, ErrFitDivergence
	}

	return result.X[0], result.X[1], nil
}

// rSquared calcula o coeficiente de determinação do modelo sobre os pares
// observados. Receitas constantes degeneram o total de quadrados; nesse caso
// o R² é 1 para resíduo nulo e 0 caso contrário.
func rSquared(spends, revenues []float64, model func(float64) float64) float64 {
	mean := stat.Mean(revenues, nil)

	ssRes := 0.0
	ssTot := 0.0
	for i, s := range spends {
		residual := revenues[i] - model(s)
		ssRes += residual * residual

		deviation := revenues[i] - mean
		ssTot += deviation * deviation
	}

	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}

	return 1 - ssRes/ssTot
}

// recentMeanSpend calcula a média de gasto dos últimos n dias da janela,
// incluindo dias de gasto zero.
func recentMeanSpend(records []*domain.DailyChannelRecord, n int) float64 {
	if len(records) == 0 {
		return 0
	}

	sorted := make([]*domain.DailyChannelRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}

	total := 0.0
	for _, r := range sorted {
		total += r.Spend
	}

	return total / float64(len(sorted))
}

func groupByChannel(records []*domain.DailyChannelRecord) map[string][]*domain.DailyChannelRecord {
	grouped := make(map[string][]*domain.DailyChannelRecord)
	for _, r := range records {
		grouped[r.Channel] = append(grouped[r.Channel], r)
	}
	return grouped
}
