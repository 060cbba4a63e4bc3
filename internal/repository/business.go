package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

type BusinessRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBusinessRepo(db *dbpg.DB) *BusinessRepository {
	return &BusinessRepository{
		db: db,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	const query = `
		INSERT INTO businesses (id, name, time_zone, buffer_before_secs, buffer_after_secs, telegram_chat_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		b.ID, b.Name, b.TimeZone,
		int64(b.BufferBefore.Seconds()), int64(b.BufferAfter.Seconds()),
		b.TelegramChatID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}

	return nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	const query = `
		SELECT id, name, time_zone, buffer_before_secs, buffer_after_secs, telegram_chat_id, created_at, updated_at
		FROM businesses
		WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}

	var b domain.Business
	var beforeSecs, afterSecs int64
	if err = row.Scan(
		&b.ID, &b.Name, &b.TimeZone, &beforeSecs, &afterSecs,
		&b.TelegramChatID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("scan business: %w", err)
	}
	b.BufferBefore = time.Duration(beforeSecs) * time.Second
	b.BufferAfter = time.Duration(afterSecs) * time.Second

	return &b, nil
}
