package repository

import (
	"context"
	"fmt"
	"time"

	"steamdeals/scanner/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DealRepository persists discovered deals. A failed save never invalidates
// a scan result that has already been computed.
type DealRepository interface {
	SaveDeals(ctx context.Context, deals []domain.Deal, capturedAt time.Time) error
}

type dealRepository struct {
	db *pgxpool.Pool
}

func NewDealRepository(db *pgxpool.Pool) DealRepository {
	return &dealRepository{
		db: db,
	}
}

func (r *dealRepository) SaveDeals(ctx context.Context, deals []domain.Deal, capturedAt time.Time) error {
	query := `
	INSERT INTO deals (app_id, data, captured_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (app_id)
	DO UPDATE SET data = $2, captured_at = $3`

	for _, deal := range deals {
		if _, err := r.db.Exec(ctx, query, deal.AppID, deal, capturedAt); err != nil {
			return fmt.Errorf("failed to save deal %d: %w", deal.AppID, err)
		}
	}

	return nil
}
