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
	externalFactorsTable = "external_factors ef"
)

// ExternalFactorRepository expõe feriados e índices de sazonalidade por data.
type ExternalFactorRepository interface {
	GetByDateRange(startDate, endDate time.Time) ([]*domain.ExternalFactor, error)
}

type externalFactorRepository struct {
	conn *postgres.Connection
}

func NewExternalFactorRepository(conn *postgres.Connection) ExternalFactorRepository {
	return &externalFactorRepository{
		conn: conn,
	}
}

func (r *externalFactorRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.ExternalFactor, error) {
	query, args, err := squirrel.
		Select("ef.date, ef.is_holiday, ef.holiday_name, ef.competitor_activity, ef.seasonality_index").
		From(externalFactorsTable).
		Where(squirrel.GtOrEq{"ef.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"ef.date": endDate.Format("2006-01-02")}).
		OrderBy("ef.date ASC").
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

	factors := make([]*domain.ExternalFactor, 0)
	for rows.Next() {
		factor := &domain.ExternalFactor{}
		err := rows.Scan(
			&factor.Date,
			&factor.IsHoliday,
			&factor.HolidayName,
			&factor.CompetitorActivity,
			&factor.SeasonalityIndex,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fator externo: %w", err)
		}
		factors = append(factors, factor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return factors, nil
}
