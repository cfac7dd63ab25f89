package domain

import "time"

// AttributionModel identifica o modelo de atribuição. O conjunto é fechado:
// novos modelos exigem mudança de código, não há extensão dinâmica.
type AttributionModel string

const (
	ModelLinear     AttributionModel = "linear"
	ModelTimeDecay  AttributionModel = "time_decay"
	ModelUShaped    AttributionModel = "u_shaped"
	ModelDataDriven AttributionModel = "data_driven"
)

// AllAttributionModels lista os modelos na ordem de preferência usada como
// critério de desempate na comparação (do mais para o menos preferido).
var AllAttributionModels = []AttributionModel{
	ModelDataDriven,
	ModelUShaped,
	ModelTimeDecay,
	ModelLinear,
}

// Valid verifica se o modelo informado é um dos modelos suportados.
func (m AttributionModel) Valid() bool {
	switch m {
	case ModelLinear, ModelTimeDecay, ModelUShaped, ModelDataDriven:
		return true
	}
	return false
}

// ChannelAttribution é o crédito absoluto e percentual de um canal.
// Percentage usa escala 0-100; Weight é a fração 0-1 correspondente.
type ChannelAttribution struct {
	Channel               string  `json:"channel"`
	Weight                float64 `json:"weight"`
	AttributedConversions float64 `json:"attributed_conversions"`
	AttributedRevenue     float64 `json:"attributed_revenue"`
	Percentage            float64 `json:"percentage"`
}

// AttributionResponse é o resultado de uma atribuição para um modelo.
// Empty indica a janela sem conversões atribuíveis: todos os pesos são zero
// e isso não é um erro.
type AttributionResponse struct {
	Model   AttributionModel      `json:"model"`
	Filters *PeriodFilters        `json:"period"`
	Results []*ChannelAttribution `json:"results"`
	Empty   bool                  `json:"empty"`
}

// ChannelVariance resume a dispersão do percentual de um canal entre modelos.
type ChannelVariance struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// ModelComparisonResponse agrega os quatro modelos sobre a mesma janela.
type ModelComparisonResponse struct {
	Filters          *PeriodFilters                            `json:"period"`
	Models           map[AttributionModel]*AttributionResponse `json:"models"`
	ChannelVariance  map[string]*ChannelVariance               `json:"channel_variance"`
	Recommendation   string                                    `json:"recommendation"`
	RecommendedModel AttributionModel                          `json:"recommended_model"`
}

// AttributionResultEntry é o snapshot persistido de uma atribuição,
// gravado pelo agendador noturno por (data, canal, modelo).
type AttributionResultEntry struct {
	ID                    int              `json:"id"`
	Date                  time.Time        `json:"date"`
	Channel               string           `json:"channel"`
	Model                 AttributionModel `json:"model_type"`
	AttributedConversions float64          `json:"attributed_conversions"`
	AttributedRevenue     float64          `json:"attributed_revenue"`
	CreatedAt             time.Time        `json:"created_at"`
}
