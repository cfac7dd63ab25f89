package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseCurveRevenue(t *testing.T) {
	exponential := &ResponseCurve{Kind: CurveExponential, A: 50000, B: 0.0005}
	linear := &ResponseCurve{Kind: CurveLinear, K: 3.2}

	assert.Zero(t, exponential.Revenue(0))
	assert.Zero(t, exponential.Revenue(-100))
	assert.InDelta(t, 50000*(1-math.Exp(-0.0005*2000)), exponential.Revenue(2000), 1e-9)

	assert.InDelta(t, 3200.0, linear.Revenue(1000), 1e-9)
	assert.Zero(t, linear.Revenue(0))
}

func TestResponseCurveMarginalReturn(t *testing.T) {
	exponential := &ResponseCurve{Kind: CurveExponential, A: 50000, B: 0.0005}
	linear := &ResponseCurve{Kind: CurveLinear, K: 3.2}

	// Em zero a derivada é a·b; gasto negativo é tratado como zero
	assert.InDelta(t, 25.0, exponential.MarginalReturn(0), 1e-9)
	assert.InDelta(t, 25.0, exponential.MarginalReturn(-50), 1e-9)

	// Retorno marginal estritamente decrescente na exponencial
	previous := exponential.MarginalReturn(0)
	for spend := 500.0; spend <= 10000; spend += 500 {
		current := exponential.MarginalReturn(spend)
		assert.Less(t, current, previous)
		previous = current
	}

	// O fallback linear tem retorno marginal constante
	assert.InDelta(t, 3.2, linear.MarginalReturn(0), 1e-9)
	assert.InDelta(t, 3.2, linear.MarginalReturn(100000), 1e-9)
}

func TestResponseCurveSaturationPoint(t *testing.T) {
	exponential := &ResponseCurve{Kind: CurveExponential, A: 50000, B: 0.0005}

	// e^(−b·s) = 0.2  →  s = ln(5)/b
	expected := math.Log(5) / 0.0005
	assert.InDelta(t, expected, exponential.SaturationPoint(0.2), 1e-6)

	// Limiar fora de (0, 1) cai no padrão de 0.2
	assert.InDelta(t, expected, exponential.SaturationPoint(0), 1e-6)
	assert.InDelta(t, expected, exponential.SaturationPoint(1.5), 1e-6)

	// O fallback linear nunca satura: o ponto é o teto do domínio
	linear := &ResponseCurve{Kind: CurveLinear, K: 3.2, DomainMax: 8000}
	assert.InDelta(t, 8000.0, linear.SaturationPoint(0.2), 1e-9)
}

func TestResponseCurveEfficiencyStatus(t *testing.T) {
	saturation := math.Log(5) / 0.0005 // ≈ 3219

	tests := []struct {
		name         string
		currentSpend float64
		want         string
	}{
		{
			name:         "Gasto abaixo de 50% do ponto de saturação - subinvestido",
			currentSpend: saturation * 0.3,
			want:         EfficiencyUnderInvested,
		},
		{
			name:         "Gasto entre 50% e 100% do ponto de saturação - eficiente",
			currentSpend: saturation * 0.8,
			want:         EfficiencyEfficient,
		},
		{
			name:         "Gasto acima do ponto de saturação - saturado",
			currentSpend: saturation * 1.2,
			want:         EfficiencyOverSaturated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve := &ResponseCurve{
				Kind:              CurveExponential,
				A:                 50000,
				B:                 0.0005,
				CurrentDailySpend: tt.currentSpend,
			}

			assert.Equal(t, tt.want, curve.EfficiencyStatus(0.2))
		})
	}
}
