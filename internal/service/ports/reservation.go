package ports

import (
	"context"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
)

type ReservationRepo interface {
	PlaceHold(ctx context.Context, res *domain.Reservation, buffers domain.BufferConfig) error
	Promote(ctx context.Context, id string, input domain.PromoteInput, buffers domain.BufferConfig) (*domain.Reservation, error)
	Cancel(ctx context.Context, id string) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	AvailableUnits(ctx context.Context, skuID string, start, end time.Time, buffers domain.BufferConfig, excludeReservationID string) (int, error)
	CancelExpired(ctx context.Context, grace time.Duration) ([]*domain.Reservation, error)
}
