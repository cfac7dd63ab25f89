package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/mmm-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
)

const (
	campaignsTable = "campaigns c"
)

// CampaignRepository expõe os metadados de campanha, somente leitura para o
// core.
type CampaignRepository interface {
	GetActiveByChannel(channel string, reference time.Time) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetActiveByChannel(channel string, reference time.Time) ([]*domain.Campaign, error) {
	query, args, err := squirrel.
		Select("c.id, c.channel, c.campaign_name, c.start_date, c.end_date, c.budget, c.campaign_type, c.created_at, c.updated_at").
		From(campaignsTable).
		Where(squirrel.Eq{"c.channel": channel}).
		Where(squirrel.LtOrEq{"c.start_date": reference.Format("2006-01-02")}).
		Where(squirrel.GtOrEq{"c.end_date": reference.Format("2006-01-02")}).
		OrderBy("c.start_date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		err := rows.Scan(
			&campaign.ID,
			&campaign.Channel,
			&campaign.CampaignName,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.Budget,
			&campaign.CampaignType,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}
