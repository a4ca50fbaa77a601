package db

import (
	"context"
	"fmt"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// QueryPublish upserts every row and records the run in one transaction.
// Rows are keyed by radical number, so republishing replaces the previous table.
func (c *Client) QueryPublish(ctx context.Context, run models.PublishRun, rows []models.RadicalRecord) error {
	sql := `
		BEGIN TRANSACTION;
		FOR $row IN $rows {
			UPSERT type::record("radical", $row.number) CONTENT $row;
		};
		CREATE publish_run CONTENT $run;
		COMMIT TRANSACTION;
	`
	vars := map[string]any{
		"rows": rows,
		"run":  run,
	}

	results, err := surrealdb.Query[any](ctx, c.db, sql, vars)
	if err != nil {
		return fmt.Errorf("publish: %w", wrapQueryError(err))
	}
	if results != nil {
		for _, r := range *results {
			if r.Status != "OK" {
				return fmt.Errorf("publish: statement status %s: %v", r.Status, r.Result)
			}
		}
	}
	return nil
}

// QueryListRadicals returns every published row in radical order.
func (c *Client) QueryListRadicals(ctx context.Context) ([]models.RadicalRecord, error) {
	sql := `SELECT * FROM radical ORDER BY number ASC`

	results, err := surrealdb.Query[[]models.RadicalRecord](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("list radicals: %w", wrapQueryError(err))
	}
	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.RadicalRecord{}, nil
}

// QueryGetRadical returns the published row for radical n.
func (c *Client) QueryGetRadical(ctx context.Context, n int) (*models.RadicalRecord, error) {
	sql := `SELECT * FROM $id`

	results, err := surrealdb.Query[[]models.RadicalRecord](ctx, c.db, sql, map[string]any{"id": models.RadicalRecordID(n)})
	if err != nil {
		return nil, fmt.Errorf("get radical %d: %w", n, wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("radical %d: %w", n, ErrNotFound)
	}
	return &(*results)[0].Result[0], nil
}

// QueryFindByIntermediary returns the rows whose intermediary is code ("U+6C34").
func (c *Client) QueryFindByIntermediary(ctx context.Context, code string) ([]models.RadicalRecord, error) {
	sql := `SELECT * FROM radical WHERE intermediary_code = $code ORDER BY number ASC`

	results, err := surrealdb.Query[[]models.RadicalRecord](ctx, c.db, sql, map[string]any{"code": code})
	if err != nil {
		return nil, fmt.Errorf("find by intermediary: %w", wrapQueryError(err))
	}
	if results != nil && len(*results) > 0 {
		return (*results)[0].Result, nil
	}
	return []models.RadicalRecord{}, nil
}

// QueryLatestRun returns the most recent publish.
func (c *Client) QueryLatestRun(ctx context.Context) (*models.PublishRun, error) {
	sql := `SELECT * FROM publish_run ORDER BY created DESC LIMIT 1`

	results, err := surrealdb.Query[[]models.PublishRun](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", wrapQueryError(err))
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("publish run: %w", ErrNotFound)
	}
	return &(*results)[0].Result[0], nil
}
