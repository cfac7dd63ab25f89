package domain

import (
	"time"

	"github.com/vfg2006/mmm-engine-api/pkg/utils"
)

// ChannelMetrics resume a performance de um canal dentro de um período.
type ChannelMetrics struct {
	Name        string  `json:"name"`
	Spend       float64 `json:"spend"`
	Revenue     float64 `json:"revenue"`
	Conversions int     `json:"conversions"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	ROAS        float64 `json:"roas"`
	CTR         float64 `json:"ctr"`
}

// MetricChange é a variação absoluta e percentual entre dois períodos.
type MetricChange struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PeriodComparison compara o período atual com o período anterior de mesma
// duração.
type PeriodComparison struct {
	SpendChange   *MetricChange `json:"spend_change"`
	RevenueChange *MetricChange `json:"revenue_change"`
	ROASChange    *MetricChange `json:"roas_change"`
}

// OverviewReport é a visão agregada do programa de marketing em um período.
type OverviewReport struct {
	Filters          *PeriodFilters    `json:"period"`
	TotalSpend       float64           `json:"total_spend"`
	TotalRevenue     float64           `json:"total_revenue"`
	TotalConversions int               `json:"total_conversions"`
	ROAS             float64           `json:"roas"`
	Channels         []*ChannelMetrics `json:"channels"`
	PeriodComparison *PeriodComparison `json:"period_comparison"`
	HolidayCount     int               `json:"holiday_count"`
	AvgSeasonality   float64           `json:"avg_seasonality"`
}

// DailyPoint é um ponto da série diária retornada no detalhe de canal.
type DailyPoint struct {
	Date        time.Time `json:"date"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	Conversions int       `json:"conversions"`
	ROAS        float64   `json:"roas"`
}

// ChannelPerformanceReport detalha a performance de um único canal.
type ChannelPerformanceReport struct {
	Channel           string         `json:"channel"`
	Filters           *PeriodFilters `json:"period"`
	TotalSpend        float64        `json:"total_spend"`
	TotalRevenue      float64        `json:"total_revenue"`
	ROAS              float64        `json:"roas"`
	AvgDailySpend     float64        `json:"avg_daily_spend"`
	CurrentDailySpend float64        `json:"current_daily_spend"`
	BestDays          []*DailyPoint  `json:"best_performing_days"`
	TimeSeries        []*DailyPoint  `json:"time_series"`
	ActiveCampaigns   []*Campaign    `json:"active_campaigns"`
}

// CalculateChange calcula a variação entre dois valores de períodos
// consecutivos. Período anterior zerado resulta em variação nula, nunca em
// divisão por zero.
func CalculateChange(previous, current float64) *MetricChange {
	if previous == 0 {
		return &MetricChange{Value: 0, Percentage: 0}
	}

	absolute := current - previous

	return &MetricChange{
		Value:      utils.RoundWithTwoDecimalPlace(absolute),
		Percentage: utils.RoundWithTwoDecimalPlace(absolute / previous * 100),
	}
}
