package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type SKURepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewSKURepo(db *dbpg.DB) *SKURepository {
	return &SKURepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *SKURepository) Create(ctx context.Context, s *domain.InventorySKU) error {
	const query = `
		INSERT INTO inventory_skus (id, business_id, name, total_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		s.ID, s.BusinessID, s.Name, s.TotalQuantity, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrBusinessNotFound
		}
		return fmt.Errorf("insert sku: %w", err)
	}

	return nil
}

func (r *SKURepository) GetByID(ctx context.Context, id string) (*domain.InventorySKU, error) {
	const query = `
		SELECT id, business_id, name, total_quantity, created_at, updated_at
		FROM inventory_skus
		WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get sku: %w", err)
	}

	var s domain.InventorySKU
	if err = row.Scan(&s.ID, &s.BusinessID, &s.Name, &s.TotalQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSKUNotFound
		}
		return nil, fmt.Errorf("scan sku: %w", err)
	}

	return &s, nil
}

func (r *SKURepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.InventorySKU, error) {
	const query = `
		SELECT id, business_id, name, total_quantity, created_at, updated_at
		FROM inventory_skus
		WHERE business_id = $1
		ORDER BY name`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()

	var res []*domain.InventorySKU
	for rows.Next() {
		var s domain.InventorySKU
		if err = rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.TotalQuantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		res = append(res, &s)
	}

	return res, rows.Err()
}
