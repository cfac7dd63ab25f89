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
	marketingDataTable = "daily_marketing_data dmd"
)

// MarketingDataRepository é a fonte de verdade da série temporal diária por
// canal. Somente leitura para o motor analítico; a ingestão é feita pelo
// script de migração e por integrações externas.
type MarketingDataRepository interface {
	GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyChannelRecord, error)
	GetByChannelAndDateRange(channel string, startDate, endDate time.Time) ([]*domain.DailyChannelRecord, error)
	ListChannels() ([]string, error)
}

type marketingDataRepository struct {
	conn *postgres.Connection
}

func NewMarketingDataRepository(conn *postgres.Connection) MarketingDataRepository {
	return &marketingDataRepository{
		conn: conn,
	}
}

func (r *marketingDataRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.DailyChannelRecord, error) {
	query, args, err := squirrel.
		Select("dmd.date, dmd.channel, dmd.spend, dmd.impressions, dmd.clicks, dmd.conversions, dmd.revenue").
		From(marketingDataTable).
		Where(squirrel.GtOrEq{"dmd.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dmd.date": endDate.Format("2006-01-02")}).
		OrderBy("dmd.date ASC", "dmd.channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *marketingDataRepository) GetByChannelAndDateRange(channel string, startDate, endDate time.Time) ([]*domain.DailyChannelRecord, error) {
	query, args, err := squirrel.
		Select("dmd.date, dmd.channel, dmd.spend, dmd.impressions, dmd.clicks, dmd.conversions, dmd.revenue").
		From(marketingDataTable).
		Where(squirrel.Eq{"dmd.channel": channel}).
		Where(squirrel.GtOrEq{"dmd.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"dmd.date": endDate.Format("2006-01-02")}).
		OrderBy("dmd.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRecords(query, args...)
}

func (r *marketingDataRepository) ListChannels() ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT dmd.channel").
		From(marketingDataTable).
		OrderBy("dmd.channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	channels := make([]string, 0)
	for rows.Next() {
		var channel string
		if err := rows.Scan(&channel); err != nil {
			return nil, fmt.Errorf("erro ao escanear canal: %w", err)
		}
		channels = append(channels, channel)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return channels, nil
}

func (r *marketingDataRepository) queryRecords(query string, args ...interface{}) ([]*domain.DailyChannelRecord, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.DailyChannelRecord, 0)
	for rows.Next() {
		record := &domain.DailyChannelRecord{}
		err := rows.Scan(
			&record.Date,
			&record.Channel,
			&record.Spend,
			&record.Impressions,
			&record.Clicks,
			&record.Conversions,
			&record.Revenue,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro diário: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}
