package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/mmm-engine-api/infrastructure/database/postgres"
	"github.com/vfg2006/mmm-engine-api/internal/domain"
)

const (
	attributionResultsTable = "attribution_results ar"
)

// AttributionResultRepository persiste snapshots de atribuição calculados
// pelo agendador noturno, um por (data, canal, modelo).
type AttributionResultRepository interface {
	GetByPeriodAndModel(startDate, endDate time.Time, model domain.AttributionModel) ([]*domain.AttributionResultEntry, error)
	ReplacePeriod(startDate, endDate time.Time, model domain.AttributionModel, entries []*domain.AttributionResultEntry) error
}

type attributionResultRepository struct {
	conn *postgres.Connection
}

func NewAttributionResultRepository(conn *postgres.Connection) AttributionResultRepository {
	return &attributionResultRepository{
		conn: conn,
	}
}

func (r *attributionResultRepository) GetByPeriodAndModel(startDate, endDate time.Time, model domain.AttributionModel) ([]*domain.AttributionResultEntry, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.date, ar.channel, ar.model_type, ar.attributed_conversions, ar.attributed_revenue, ar.created_at").
		From(attributionResultsTable).
		Where(squirrel.Eq{"ar.model_type": string(model)}).
		Where(squirrel.GtOrEq{"ar.date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"ar.date": endDate.Format("2006-01-02")}).
		OrderBy("ar.date ASC", "ar.channel ASC").
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

	entries := make([]*domain.AttributionResultEntry, 0)
	for rows.Next() {
		entry := &domain.AttributionResultEntry{}
		err := rows.Scan(
			&entry.ID,
			&entry.Date,
			&entry.Channel,
			&entry.Model,
			&entry.AttributedConversions,
			&entry.AttributedRevenue,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resultado de atribuição: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

// ReplacePeriod substitui os snapshots do período e modelo informados.
// Remoção e inserção acontecem na mesma query lógica: primeiro o delete do
// período, depois o insert das novas linhas.
func (r *attributionResultRepository) ReplacePeriod(startDate, endDate time.Time, model domain.AttributionModel, entries []*domain.AttributionResultEntry) error {
	deleteQuery, deleteArgs, err := squirrel.
		Delete("attribution_results").
		Where(squirrel.Eq{"model_type": string(model)}).
		Where(squirrel.GtOrEq{"date": startDate.Format("2006-01-02")}).
		Where(squirrel.LtOrEq{"date": endDate.Format("2006-01-02")}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de remoção: %w", err)
	}

	if _, err := r.conn.Exec(deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("erro ao remover snapshots antigos: %w", err)
	}

	if len(entries) == 0 {
		return nil
	}

	insert := squirrel.StatementBuilder.
		Insert("attribution_results").
		Columns("date", "channel", "model_type", "attributed_conversions", "attributed_revenue").
		PlaceholderFormat(squirrel.Dollar)

	for _, entry := range entries {
		insert = insert.Values(
			entry.Date.Format("2006-01-02"),
			entry.Channel,
			string(entry.Model),
			entry.AttributedConversions,
			entry.AttributedRevenue,
		)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query de inserção: %w", err)
	}

	if _, err := r.conn.Exec(insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("erro ao inserir snapshots de atribuição: %w", err)
	}

	return nil
}
