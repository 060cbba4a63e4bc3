package scheduler

import (
	"context"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/wb-go/wbf/logger"
)

type holdExpirer interface {
	CancelExpired(ctx context.Context) ([]*domain.Reservation, error)
}

// Scheduler periodically sweeps long-expired holds into cancelled.
// Availability never depends on this: expired holds stop counting against
// capacity the moment expires_at passes.
type Scheduler struct {
	reservations holdExpirer
	interval     time.Duration
	logger       logger.Logger
}

func New(
	reservations holdExpirer,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		reservations: reservations,
		interval:     interval,
		logger:       logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("hold janitor started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("hold janitor stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	cancelled, err := s.reservations.CancelExpired(ctx)
	if err != nil {
		s.logger.Error("failed to cancel expired holds",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, r := range cancelled {
		s.logger.Info("expired hold cancelled",
			logger.String("reservation_id", r.ID),
			logger.String("business_id", r.BusinessID),
		)
	}
}
