package domain

import "time"

// CampaignType classifica o objetivo da campanha.
const (
	CampaignAwareness  = "awareness"
	CampaignConversion = "conversion"
	CampaignRetention  = "retention"
)

// Campaign é o metadado de campanha associado a um canal. Somente leitura
// para o core; usado pelo relatório de performance por canal.
type Campaign struct {
	ID           string    `json:"id"`
	Channel      string    `json:"channel"`
	CampaignName string    `json:"campaign_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Budget       float64   `json:"budget"`
	CampaignType string    `json:"campaign_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
