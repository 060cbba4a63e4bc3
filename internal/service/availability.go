package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/service/ports"
)

// AvailabilityService answers the advisory "how many units are free" question
// the booking UI asks before placing a hold. Its answer can go stale between
// call and commit; the reservation transaction re-checks before committing.
type AvailabilityService struct {
	reservationRepo ports.ReservationRepo
	businessRepo    ports.BusinessRepo
	skuRepo         ports.SKURepo
	cache           ports.BusinessCache
}

func NewAvailabilityService(
	reservationRepo ports.ReservationRepo,
	businessRepo ports.BusinessRepo,
	skuRepo ports.SKURepo,
	cache ports.BusinessCache,
) *AvailabilityService {
	return &AvailabilityService{
		reservationRepo: reservationRepo,
		businessRepo:    businessRepo,
		skuRepo:         skuRepo,
		cache:           cache,
	}
}

func (s *AvailabilityService) Check(ctx context.Context, businessID, skuID string, start, end time.Time) (int, error) {
	if !start.Before(end) {
		return 0, fmt.Errorf("%w: window start must be before end", domain.ErrValidation)
	}

	business, err := businessByID(ctx, s.cache, s.businessRepo, businessID)
	if err != nil {
		return 0, fmt.Errorf("load business: %w", err)
	}

	sku, err := s.skuRepo.GetByID(ctx, skuID)
	if err != nil {
		return 0, err
	}
	if sku.BusinessID != businessID {
		return 0, domain.ErrSKUNotFound
	}

	return s.reservationRepo.AvailableUnits(ctx, skuID, start, end, business.Buffers(), "")
}
