package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/clock"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/service/ports"
	"github.com/google/uuid"
)

// CatalogService manages the engine's collaborators: businesses (buffer
// config, time zone) and inventory SKUs (total unit counts).
type CatalogService struct {
	businessRepo ports.BusinessRepo
	skuRepo      ports.SKURepo
	cache        ports.BusinessCache
	clk          clock.Clock
}

func NewCatalogService(
	businessRepo ports.BusinessRepo,
	skuRepo ports.SKURepo,
	cache ports.BusinessCache,
	clk clock.Clock,
) *CatalogService {
	return &CatalogService{
		businessRepo: businessRepo,
		skuRepo:      skuRepo,
		cache:        cache,
		clk:          clk,
	}
}

func (s *CatalogService) CreateBusiness(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.TimeZone == "" {
		return nil, fmt.Errorf("%w: time_zone is required", domain.ErrValidation)
	}
	if _, err := time.LoadLocation(input.TimeZone); err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTimeZone, input.TimeZone)
	}
	if input.BufferBefore < 0 || input.BufferAfter < 0 {
		return nil, fmt.Errorf("%w: buffers must be non-negative", domain.ErrValidation)
	}

	now := s.clk.Now()
	business := &domain.Business{
		ID:             uuid.New().String(),
		Name:           input.Name,
		TimeZone:       input.TimeZone,
		BufferBefore:   input.BufferBefore,
		BufferAfter:    input.BufferAfter,
		TelegramChatID: input.TelegramChatID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, business)
	}

	return business, nil
}

func (s *CatalogService) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	return businessByID(ctx, s.cache, s.businessRepo, id)
}

func (s *CatalogService) CreateSKU(ctx context.Context, input domain.CreateSKUInput) (*domain.InventorySKU, error) {
	if input.BusinessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", domain.ErrValidation)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.TotalQuantity < 0 {
		return nil, fmt.Errorf("%w: total_quantity must be non-negative", domain.ErrValidation)
	}

	now := s.clk.Now()
	sku := &domain.InventorySKU{
		ID:            uuid.New().String(),
		BusinessID:    input.BusinessID,
		Name:          input.Name,
		TotalQuantity: input.TotalQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.skuRepo.Create(ctx, sku); err != nil {
		return nil, fmt.Errorf("create sku: %w", err)
	}

	return sku, nil
}

func (s *CatalogService) ListSKUs(ctx context.Context, businessID string) ([]*domain.InventorySKU, error) {
	return s.skuRepo.ListByBusiness(ctx, businessID)
}

// businessByID is the shared read-through path for business records. The
// cache may be nil (disabled).
func businessByID(ctx context.Context, cache ports.BusinessCache, repo ports.BusinessRepo, id string) (*domain.Business, error) {
	if cache != nil {
		if b, ok := cache.Get(ctx, id); ok {
			return b, nil
		}
	}

	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.Set(ctx, b)
	}

	return b, nil
}
