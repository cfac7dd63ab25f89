package domain

import "math"

// CurveKind indica a forma da curva de resposta ajustada.
type CurveKind string

const (
	// CurveExponential é a curva saturante revenue = a·(1 − e^(−b·spend)).
	CurveExponential CurveKind = "exponential"
	// CurveLinear é o fallback de ROAS constante revenue = k·spend, usado
	// quando o ajuste não converge ou o R² fica abaixo do mínimo.
	CurveLinear CurveKind = "linear"
)

// ResponseCurve é a curva de resposta gasto → receita de um canal, ajustada
// a partir dos pares diários (spend, revenue) da janela. Criada por requisição
// e nunca mutada; o domínio válido é [0, SpendMax·fator de extrapolação].
type ResponseCurve struct {
	Channel string    `json:"channel"`
	Kind    CurveKind `json:"kind"`

	// Parâmetros da curva exponencial (a, b > 0 em ajustes aceitos).
	A float64 `json:"a"`
	B float64 `json:"b"`
	// Inclinação do fallback linear (receita total / gasto total).
	K float64 `json:"k"`

	RSquared      float64 `json:"r_squared"`
	LowConfidence bool    `json:"low_confidence"`

	// Faixa de gasto observada usada no ajuste (apenas dias com spend > 0).
	SpendMin float64 `json:"spend_min"`
	SpendMax float64 `json:"spend_max"`
	// Limite superior do domínio de extrapolação.
	DomainMax float64 `json:"domain_max"`

	// Média dos últimos 7 dias e da janela completa, respectivamente.
	CurrentDailySpend float64 `json:"current_daily_spend"`
	AvgDailySpend     float64 `json:"avg_daily_spend"`

	FittedDays int `json:"fitted_days"`
}

// Revenue avalia a curva no nível de gasto informado.
func (c *ResponseCurve) Revenue(spend float64) float64 {
	if spend <= 0 {
		return 0
	}

	switch c.Kind {
	case CurveLinear:
		return c.K * spend
	default:
		return c.A * (1 - math.Exp(-c.B*spend))
	}
}

// MarginalReturn é a derivada da curva no nível de gasto informado
// (receita incremental por unidade de gasto incremental).
func (c *ResponseCurve) MarginalReturn(spend float64) float64 {
	if spend < 0 {
		spend = 0
	}

	switch c.Kind {
	case CurveLinear:
		return c.K
	default:
		return c.A * c.B * math.Exp(-c.B*spend)
	}
}

// SaturationPoint resolve o gasto em que o retorno marginal cai para a
// fração threshold do retorno marginal em zero: e^(−b·s) = threshold.
// O fallback linear nunca satura; nesse caso o ponto é o teto do domínio,
// coerente com a flag de baixa confiança.
func (c *ResponseCurve) SaturationPoint(threshold float64) float64 {
	if c.Kind == CurveLinear || c.B <= 0 {
		return c.DomainMax
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.2
	}

	return math.Log(1/threshold) / c.B
}

// EfficiencyStatus classifica o gasto diário corrente frente ao ponto de
// saturação: abaixo de 50% é subinvestido, acima de 100% é saturado.
func (c *ResponseCurve) EfficiencyStatus(threshold float64) string {
	saturation := c.SaturationPoint(threshold)
	if saturation <= 0 {
		return EfficiencyOverSaturated
	}

	ratio := c.CurrentDailySpend / saturation
	switch {
	case ratio < 0.5:
		return EfficiencyUnderInvested
	case ratio <= 1.0:
		return EfficiencyEfficient
	default:
		return EfficiencyOverSaturated
	}
}

// Status de eficiência de investimento de um canal.
const (
	EfficiencyUnderInvested = "under-invested"
	EfficiencyEfficient     = "efficient"
	EfficiencyOverSaturated = "over-saturated"
)

// MarginalReturnSample é um ponto amostrado da curva de retorno marginal,
// consumido pela camada de apresentação para plotagem.
type MarginalReturnSample struct {
	Spend        float64 `json:"spend"`
	MarginalROAS float64 `json:"marginal_roas"`
}

// SaturationAnalysisResponse agrega a análise de saturação de todos os
// canais da janela. Skipped lista os canais que não puderam ser analisados
// (dados insuficientes) e o motivo de cada um.
type SaturationAnalysisResponse struct {
	Filters  *PeriodFilters                `json:"period"`
	Channels map[string]*ChannelSaturation `json:"channels"`
	Skipped  map[string]string             `json:"skipped,omitempty"`
}

// ChannelSaturation é a saída da análise de saturação de um canal.
type ChannelSaturation struct {
	Channel              string                 `json:"channel"`
	SaturationPoint      float64                `json:"saturation_point"`
	CurrentSpend         float64                `json:"current_spend"`
	AvgDailySpend        float64                `json:"avg_daily_spend"`
	EfficiencyStatus     string                 `json:"efficiency_status"`
	LowConfidence        bool                   `json:"low_confidence"`
	RSquared             float64                `json:"r_squared"`
	MarginalReturnsCurve []MarginalReturnSample `json:"marginal_returns_curve"`
}
