package ports

import (
	"context"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
)

type BusinessRepo interface {
	Create(ctx context.Context, b *domain.Business) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
}

type SKURepo interface {
	Create(ctx context.Context, s *domain.InventorySKU) error
	GetByID(ctx context.Context, id string) (*domain.InventorySKU, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*domain.InventorySKU, error)
}

// BusinessCache is a read-through cache for business records; buffer config
// and time zone are read on every engine call and change rarely.
type BusinessCache interface {
	Get(ctx context.Context, id string) (*domain.Business, bool)
	Set(ctx context.Context, b *domain.Business)
	Invalidate(ctx context.Context, id string)
}
