package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/clock"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

const (
	defaultHoldTTL        = 30 * time.Minute
	defaultRetryAttempts  = 3
	defaultRetryBaseDelay = 200 * time.Millisecond
	defaultTxTimeout      = 5 * time.Second
	defaultExpiryGrace    = 5 * time.Minute
)

// ReservationConfig tunes the reservation transaction. Zero values fall back
// to the defaults above.
type ReservationConfig struct {
	HoldTTL        time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
	TxTimeout      time.Duration
	ExpiryGrace    time.Duration
}

func (c ReservationConfig) withDefaults() ReservationConfig {
	if c.HoldTTL <= 0 {
		c.HoldTTL = defaultHoldTTL
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = defaultRetryBaseDelay
	}
	if c.TxTimeout <= 0 {
		c.TxTimeout = defaultTxTimeout
	}
	if c.ExpiryGrace <= 0 {
		c.ExpiryGrace = defaultExpiryGrace
	}
	return c
}

type ReservationService struct {
	reservationRepo ports.ReservationRepo
	businessRepo    ports.BusinessRepo
	cache           ports.BusinessCache
	notifier        ports.ReservationNotifier
	clk             clock.Clock
	logger          logger.Logger
	cfg             ReservationConfig
}

func NewReservationService(
	reservationRepo ports.ReservationRepo,
	businessRepo ports.BusinessRepo,
	cache ports.BusinessCache,
	notifier ports.ReservationNotifier,
	clk clock.Clock,
	log logger.Logger,
	cfg ReservationConfig,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		businessRepo:    businessRepo,
		cache:           cache,
		notifier:        notifier,
		clk:             clk,
		logger:          log,
		cfg:             cfg.withDefaults(),
	}
}

// PlaceHold validates the request, generates the reservation id before any
// transaction opens (so client replays reuse it), and drives the serializable
// transaction through the bounded retry loop.
func (s *ReservationService) PlaceHold(ctx context.Context, input domain.HoldInput) (*domain.Reservation, error) {
	if err := validateHoldInput(input); err != nil {
		return nil, err
	}

	business, err := s.business(ctx, input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}

	now := s.clk.Now()
	expiresAt := now.Add(s.cfg.HoldTTL)

	res := &domain.Reservation{
		ID:         input.ReservationID,
		BusinessID: input.BusinessID,
		Status:     domain.ReservationStatusHold,
		ExpiresAt:  &expiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	for _, ln := range input.Lines {
		res.Lines = append(res.Lines, domain.ReservationLine{
			ID:            uuid.New().String(),
			ReservationID: res.ID,
			SKUID:         ln.SKUID,
			Quantity:      ln.Quantity,
			StartsAt:      ln.StartsAt,
			EndsAt:        ln.EndsAt,
			Status:        domain.ReservationStatusHold,
			CreatedAt:     now,
		})
	}

	err = s.runTx(ctx, func(attemptCtx context.Context) error {
		return s.reservationRepo.PlaceHold(attemptCtx, res, business.Buffers())
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateHold) {
			// Same logical request replayed: return the hold it already created.
			return s.reservationRepo.GetByID(ctx, res.ID)
		}
		return nil, err
	}

	s.logger.Info("hold placed",
		logger.String("reservation_id", res.ID),
		logger.String("business_id", res.BusinessID),
		logger.Int("lines", len(res.Lines)),
	)

	return res, nil
}

// Promote converts a hold into a pending or confirmed reservation,
// re-validating availability inside the transaction because the advisory
// check has gone stale since the hold was placed.
func (s *ReservationService) Promote(ctx context.Context, id string, input domain.PromoteInput) (*domain.Reservation, error) {
	if err := validatePromoteInput(input); err != nil {
		return nil, err
	}

	current, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	business, err := s.business(ctx, current.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}

	var promoted *domain.Reservation
	err = s.runTx(ctx, func(attemptCtx context.Context) error {
		var txErr error
		promoted, txErr = s.reservationRepo.Promote(attemptCtx, id, input, business.Buffers())
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation promoted",
		logger.String("reservation_id", id),
		logger.String("status", string(promoted.Status)),
	)

	if promoted.Status == domain.ReservationStatusConfirmed {
		go s.notifier.NotifyReservationConfirmed(context.WithoutCancel(ctx), business, promoted)
	}

	return promoted, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.reservationRepo.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation cancelled",
		logger.String("reservation_id", id),
	)

	return res, nil
}

func (s *ReservationService) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

// CancelExpired is the janitor entry point: it marks long-expired holds
// cancelled and notifies their businesses. Expired holds stopped counting
// against availability the moment they expired, this is hygiene only.
func (s *ReservationService) CancelExpired(ctx context.Context) ([]*domain.Reservation, error) {
	cancelled, err := s.reservationRepo.CancelExpired(ctx, s.cfg.ExpiryGrace)
	if err != nil {
		return nil, fmt.Errorf("cancel expired: %w", err)
	}

	if len(cancelled) > 0 {
		s.logger.Info("expired holds cancelled",
			logger.Int("count", len(cancelled)),
		)

		go s.notifyExpired(context.WithoutCancel(ctx), cancelled)
	}

	return cancelled, nil
}

func (s *ReservationService) notifyExpired(ctx context.Context, cancelled []*domain.Reservation) {
	for _, res := range cancelled {
		business, err := s.business(ctx, res.BusinessID)
		if err != nil {
			s.logger.Error("failed to get business for expiry notification",
				logger.String("business_id", res.BusinessID),
			)
			continue
		}
		s.notifier.NotifyHoldExpired(ctx, business, res)
	}
}

// runTx drives one reservation transaction through the retry policy: each
// attempt gets its own timeout; conflicts and transients are retried with a
// linear jittered backoff; everything else fails fast. Exhausted conflicts
// surface as ErrReservationConflict so the caller cannot tell a first-attempt
// rejection from retry exhaustion, while exhausted transients surface as
// ErrTemporarilyUnavailable so clients can re-prompt instead of showing
// "sold out".
func (s *ReservationService) runTx(ctx context.Context, attempt func(ctx context.Context) error) error {
	var lastErr error

	for i := 1; i <= s.cfg.RetryAttempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.TxTimeout)
		err := attempt(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrTxConflict) && !errors.Is(err, domain.ErrTxTransient) {
			return err
		}

		lastErr = err
		s.logger.Warn("reservation transaction attempt failed",
			logger.Int("attempt", i),
			logger.String("error", err.Error()),
		)

		if i < s.cfg.RetryAttempts {
			select {
			case <-time.After(s.backoff(i)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if errors.Is(lastErr, domain.ErrTxConflict) {
		return domain.ErrReservationConflict
	}
	return domain.ErrTemporarilyUnavailable
}

func (s *ReservationService) backoff(attempt int) time.Duration {
	d := s.cfg.RetryBaseDelay * time.Duration(attempt)
	jitter := time.Duration(rand.Int63n(int64(s.cfg.RetryBaseDelay)))
	return d + jitter
}

func (s *ReservationService) business(ctx context.Context, id string) (*domain.Business, error) {
	return businessByID(ctx, s.cache, s.businessRepo, id)
}

func validateHoldInput(input domain.HoldInput) error {
	if input.BusinessID == "" {
		return fmt.Errorf("%w: business_id is required", domain.ErrValidation)
	}
	if len(input.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", domain.ErrValidation)
	}

	seen := make(map[string]struct{}, len(input.Lines))
	for _, ln := range input.Lines {
		if err := validateLine(ln, false); err != nil {
			return err
		}
		if _, dup := seen[ln.SKUID]; dup {
			return fmt.Errorf("%w: duplicate sku %s", domain.ErrValidation, ln.SKUID)
		}
		seen[ln.SKUID] = struct{}{}
	}

	return nil
}

func validatePromoteInput(input domain.PromoteInput) error {
	if input.Status != domain.ReservationStatusPending && input.Status != domain.ReservationStatusConfirmed {
		return fmt.Errorf("%w: status must be pending or confirmed", domain.ErrValidation)
	}
	for _, ln := range input.Lines {
		if err := validateLine(ln, true); err != nil {
			return err
		}
	}
	return nil
}

func validateLine(ln domain.LineInput, windowOptional bool) error {
	if ln.SKUID == "" {
		return fmt.Errorf("%w: sku_id is required", domain.ErrValidation)
	}
	if ln.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	if windowOptional && ln.StartsAt.IsZero() && ln.EndsAt.IsZero() {
		return nil
	}
	if !ln.StartsAt.Before(ln.EndsAt) {
		return fmt.Errorf("%w: window start must be before end", domain.ErrValidation)
	}
	return nil
}
