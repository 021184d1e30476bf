package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/event-agenda/internal/platform/querybuilder"
)

const (
	publishTable     = "event_publish"
	publishBatchSize = 500
)

// PublishRepository stores the first publication date of each event id.
// Dates already stored are never overwritten.
type PublishRepository struct {
	db *sqlx.DB
}

func NewPublishRepository(db *sqlx.DB) *PublishRepository {
	return &PublishRepository{db: db}
}

func (r *PublishRepository) Load(ctx context.Context) (map[string]string, error) {
	query, args, err := qb.Select("event_id", "publish").
		From(publishTable).
		OrderBy("event_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select publish dates query: %w", err)
	}

	var rows []publishTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select publish dates: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.EventID] = row.Publish
	}
	return out, nil
}

func (r *PublishRepository) Save(ctx context.Context, publish map[string]string) error {
	rows := publishRows(publish)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx save publish dates: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(rows); start += publishBatchSize {
		end := min(start+publishBatchSize, len(rows))
		query, args, err := qb.InsertModels(qb.Postgres, publishTable, rows[start:end], "ON CONFLICT (event_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert publish dates query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert publish dates: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit publish dates: %w", err)
	}
	return nil
}

func publishRows(publish map[string]string) []publishTableModel {
	rows := make([]publishTableModel, 0, len(publish))
	for id, date := range publish {
		if id == "" || date == "" {
			continue
		}
		rows = append(rows, publishTableModel{EventID: id, Publish: date})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].EventID < rows[j].EventID
	})
	return rows
}
