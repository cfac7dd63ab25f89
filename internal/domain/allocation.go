package domain

// RecommendationAction é a ação sugerida para o gasto de um canal.
type RecommendationAction string

const (
	ActionIncrease RecommendationAction = "increase"
	ActionDecrease RecommendationAction = "decrease"
	ActionMaintain RecommendationAction = "maintain"
)

// RecommendationPriority gradua a urgência da recomendação.
type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// ChannelBounds restringe a alocação de um canal a [Min, Max].
// Max nulo significa "sem teto"; Max zero fixa o canal em alocação zero.
type ChannelBounds struct {
	Min float64  `json:"min"`
	Max *float64 `json:"max,omitempty"`
}

// Recommendation é derivada deterministicamente do plano e do gasto atual.
type Recommendation struct {
	Channel          string                 `json:"channel"`
	Action           RecommendationAction   `json:"action"`
	CurrentSpend     float64                `json:"current_spend"`
	RecommendedSpend float64                `json:"recommended_spend"`
	ChangeAmount     float64                `json:"change_amount"`
	ChangePercentage float64                `json:"change_percentage"`
	Priority         RecommendationPriority `json:"priority"`
}

// AllocationPlan é o resultado de uma otimização de orçamento. Um plano novo
// é construído a cada chamada e nunca alterado depois de pronto.
type AllocationPlan struct {
	ID                  string             `json:"id"`
	TotalBudget         float64            `json:"total_budget"`
	OptimizedAllocation map[string]float64 `json:"optimized_allocation"`
	ProjectedRevenue    float64            `json:"projected_revenue"`
	CurrentRevenue      float64            `json:"current_revenue"`
	RevenueLift         float64            `json:"revenue_lift"`
	ROIImprovement      float64            `json:"roi_improvement"`
	Recommendations     []*Recommendation  `json:"recommendations"`
}
