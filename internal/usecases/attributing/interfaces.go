package attributing

import (
	"github.com/vfg2006/mmm-engine-api/internal/domain"
)

// Attributor define a interface do motor de atribuição multi-modelo
type Attributor interface {
	// Attribute calcula o crédito fracionário de cada canal para um modelo
	// e uma janela de datas
	Attribute(filters *domain.PeriodFilters, model domain.AttributionModel) (*domain.AttributionResponse, error)

	// CompareModels roda os quatro modelos sobre a mesma janela e agrega as
	// estatísticas de variância por canal
	CompareModels(filters *domain.PeriodFilters) (*domain.ModelComparisonResponse, error)
}
