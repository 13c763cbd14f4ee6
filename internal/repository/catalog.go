package repository

import (
	"context"
	"fmt"

	"steamdeals/scanner/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository is the read side of the ingested app catalog. Ordering
// by app id gives the scanner a stable, deterministic scan order.
type CatalogRepository interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, count int) ([]domain.App, error)
	ReplaceAll(ctx context.Context, apps []domain.App) error
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func (r *catalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM apps`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return count, nil
}

func (r *catalogRepository) Slice(ctx context.Context, offset, count int) ([]domain.App, error) {
	rows, err := r.db.Query(ctx,
		`SELECT app_id, name FROM apps ORDER BY app_id LIMIT $1 OFFSET $2`,
		count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.App, 0, count)
	for rows.Next() {
		var app domain.App
		if err := rows.Scan(&app.ID, &app.Name); err != nil {
			return nil, fmt.Errorf("failed to scan app row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read app rows: %w", err)
	}

	return apps, nil
}

func (r *catalogRepository) ReplaceAll(ctx context.Context, apps []domain.App) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin catalog replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE apps`); err != nil {
		return fmt.Errorf("failed to truncate apps: %w", err)
	}

	rows := make([][]any, 0, len(apps))
	for _, app := range apps {
		rows = append(rows, []any{app.ID, app.Name})
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"apps"},
		[]string{"app_id", "name"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy apps: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}
	return nil
}
