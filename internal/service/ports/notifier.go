package ports

import (
	"context"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
)

type ReservationNotifier interface {
	NotifyReservationConfirmed(ctx context.Context, b *domain.Business, r *domain.Reservation)
	NotifyHoldExpired(ctx context.Context, b *domain.Business, r *domain.Reservation)
}
