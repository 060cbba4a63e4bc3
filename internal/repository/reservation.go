package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/clock"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// ReservationRepository owns the only write path to reservation rows. All
// coordination between concurrent hold/promote calls is delegated to Postgres
// SERIALIZABLE isolation: a quantity-summing capacity rule cannot be encoded
// as an exclusion constraint, so the transactional re-check is the enforcement
// mechanism and serialization failures are retried by the service layer.
type ReservationRepository struct {
	db       *dbpg.DB
	clk      clock.Clock
	strategy retry.Strategy
}

func NewReservationRepo(db *dbpg.DB, clk clock.Clock) *ReservationRepository {
	return &ReservationRepository{
		db:  db,
		clk: clk,
		strategy: retry.Strategy{
			Attempts: 3,
			Delay:    500 * time.Millisecond,
			Backoff:  2,
		},
	}
}

// Overlap test is inclusive at both ends: windows that merely touch conflict,
// with or without buffers. One convention, applied uniformly. $3/$4 carry the
// requested window pre-widened by bufferedWindow so each stored line is
// effectively compared over its own buffered occupancy.
const availableUnitsQuery = `
		SELECT s.total_quantity - COALESCE((
			SELECT SUM(l.quantity)
			FROM reservation_lines l
			JOIN reservations res ON res.id = l.reservation_id
			WHERE l.sku_id = s.id
			  AND ($2::uuid IS NULL OR l.reservation_id <> $2::uuid)
			  AND l.starts_at <= $4
			  AND l.ends_at >= $3
			  AND (res.status IN ('pending', 'confirmed')
			       OR (res.status = 'hold' AND res.expires_at > $5))
		), 0)
		FROM inventory_skus s
		WHERE s.id = $1`

// AvailableUnits reports how many units of a SKU are free for the exact
// window [start, end), counting live lines whose buffered window intersects
// it. Advisory only: the same computation is re-run inside PlaceHold/Promote
// before anything commits.
func (r *ReservationRepository) AvailableUnits(
	ctx context.Context,
	skuID string,
	start, end time.Time,
	buffers domain.BufferConfig,
	excludeReservationID string,
) (int, error) {
	checkStart, checkEnd := bufferedWindow(start, end, buffers)

	row, err := r.db.QueryRowWithRetry(
		ctx, r.strategy, availableUnitsQuery,
		skuID, nullableID(excludeReservationID), checkStart, checkEnd, r.clk.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("available units: %w", err)
	}

	var available int
	if err = row.Scan(&available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrSKUNotFound
		}
		return 0, fmt.Errorf("scan available units: %w", err)
	}

	return available, nil
}

// PlaceHold creates the reservation and its lines in one SERIALIZABLE
// transaction, re-checking availability per line in stable SKU order. The
// caller retries on ErrTxConflict/ErrTxTransient; every other failure is
// terminal.
func (r *ReservationRepository) PlaceHold(ctx context.Context, res *domain.Reservation, buffers domain.BufferConfig) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return classifyTxErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	now := r.clk.Now()

	const insertReservation = `
		INSERT INTO reservations (id, business_id, status, expires_at, customer_name, customer_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(
		ctx, insertReservation,
		res.ID, res.BusinessID, res.Status, res.ExpiresAt,
		res.CustomerName, res.CustomerEmail, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				// Client replayed the same reservation id.
				return domain.ErrDuplicateHold
			case pgForeignKeyViolation:
				return domain.ErrBusinessNotFound
			}
		}
		return classifyTxErr(fmt.Errorf("insert reservation: %w", err))
	}

	lines := make([]domain.ReservationLine, len(res.Lines))
	copy(lines, res.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].SKUID < lines[j].SKUID })

	for _, ln := range lines {
		available, err := r.availableUnitsTx(ctx, tx, ln.SKUID, ln.StartsAt, ln.EndsAt, buffers, res.ID, now)
		if err != nil {
			return err
		}
		if available < ln.Quantity {
			return fmt.Errorf("sku %s: %w", ln.SKUID, domain.ErrReservationConflict)
		}
		if err = r.insertLineTx(ctx, tx, ln); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return classifyTxErr(fmt.Errorf("commit hold: %w", err))
	}

	return nil
}

// Promote converts a live hold into a pending/confirmed reservation,
// re-validating every final line against availability (excluding the
// reservation itself) because time has passed since the hold was placed.
// Promoting an already-confirmed reservation is a no-op that returns it
// unchanged.
func (r *ReservationRepository) Promote(
	ctx context.Context,
	id string,
	input domain.PromoteInput,
	buffers domain.BufferConfig,
) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, classifyTxErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	now := r.clk.Now()

	res, err := r.getForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case domain.ReservationStatusCancelled, domain.ReservationStatusCompleted:
		return nil, domain.ErrReservationClosed
	case domain.ReservationStatusConfirmed:
		// Already promoted.
		if res.Lines, err = r.linesTx(ctx, tx, id); err != nil {
			return nil, err
		}
		return res, nil
	case domain.ReservationStatusPending:
		if input.Status == domain.ReservationStatusPending {
			if res.Lines, err = r.linesTx(ctx, tx, id); err != nil {
				return nil, err
			}
			return res, nil
		}
	case domain.ReservationStatusHold:
		if res.ExpiresAt == nil || !res.ExpiresAt.After(now) {
			return nil, domain.ErrReservationExpired
		}
	}

	existing, err := r.linesTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	final, err := mergeLines(res, existing, input.Lines, input.Status, now)
	if err != nil {
		return nil, err
	}
	sort.Slice(final, func(i, j int) bool { return final[i].SKUID < final[j].SKUID })

	for _, ln := range final {
		available, err := r.availableUnitsTx(ctx, tx, ln.SKUID, ln.StartsAt, ln.EndsAt, buffers, id, now)
		if err != nil {
			return nil, err
		}
		if available < ln.Quantity {
			return nil, fmt.Errorf("sku %s: %w", ln.SKUID, domain.ErrReservationConflict)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM reservation_lines WHERE reservation_id = $1`, id); err != nil {
		return nil, classifyTxErr(fmt.Errorf("replace lines: %w", err))
	}
	for _, ln := range final {
		if err = r.insertLineTx(ctx, tx, ln); err != nil {
			return nil, err
		}
	}

	if input.CustomerName != "" {
		res.CustomerName = input.CustomerName
	}
	if input.CustomerEmail != "" {
		res.CustomerEmail = input.CustomerEmail
	}

	const promote = `
		UPDATE reservations
		SET status = $2, expires_at = NULL, customer_name = $3, customer_email = $4, updated_at = $5
		WHERE id = $1`
	if _, err = tx.ExecContext(ctx, promote, id, input.Status, res.CustomerName, res.CustomerEmail, now); err != nil {
		return nil, classifyTxErr(fmt.Errorf("promote reservation: %w", err))
	}

	if err = tx.Commit(); err != nil {
		return nil, classifyTxErr(fmt.Errorf("commit promote: %w", err))
	}

	res.Status = input.Status
	res.ExpiresAt = nil
	res.UpdatedAt = now
	res.Lines = final

	return res, nil
}

// Cancel moves a live reservation to cancelled, releasing its units.
// Cancelling an already-cancelled reservation is a no-op.
func (r *ReservationRepository) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := r.getForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if res.Status == domain.ReservationStatusCompleted {
		return nil, domain.ErrReservationClosed
	}
	if res.Status == domain.ReservationStatusCancelled {
		if res.Lines, err = r.linesTx(ctx, tx, id); err != nil {
			return nil, err
		}
		return res, nil
	}

	now := r.clk.Now()
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = $2, expires_at = NULL, updated_at = $3 WHERE id = $1`,
		id, domain.ReservationStatusCancelled, now,
	); err != nil {
		return nil, fmt.Errorf("cancel reservation: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reservation_lines SET status = $2 WHERE reservation_id = $1`,
		id, domain.ReservationStatusCancelled,
	); err != nil {
		return nil, fmt.Errorf("cancel lines: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel: %w", err)
	}

	res.Status = domain.ReservationStatusCancelled
	res.ExpiresAt = nil
	res.UpdatedAt = now
	if res.Lines, err = r.lines(ctx, id); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	const query = `
		SELECT id, business_id, status, expires_at, customer_name, customer_email, created_at, updated_at
		FROM reservations
		WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	res, err := scanReservation(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("scan reservation: %w", err)
	}

	if res.Lines, err = r.lines(ctx, id); err != nil {
		return nil, err
	}

	return res, nil
}

// CancelExpired flips holds that expired more than grace ago to cancelled.
// Storage hygiene only: expired holds already stopped counting against
// availability the instant expires_at passed.
func (r *ReservationRepository) CancelExpired(ctx context.Context, grace time.Duration) ([]*domain.Reservation, error) {
	const query = `
		WITH expired AS (
			UPDATE reservations
			SET status = 'cancelled', expires_at = NULL, updated_at = $2
			WHERE status = 'hold' AND expires_at < $1
			RETURNING id, business_id, status, expires_at, customer_name, customer_email, created_at, updated_at
		), expired_lines AS (
			UPDATE reservation_lines l
			SET status = 'cancelled'
			FROM expired e
			WHERE l.reservation_id = e.id
		)
		SELECT id, business_id, status, expires_at, customer_name, customer_email, created_at, updated_at
		FROM expired`

	now := r.clk.Now()
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, now.Add(-grace), now)
	if err != nil {
		return nil, fmt.Errorf("cancel expired: %w", err)
	}
	defer rows.Close()

	var res []*domain.Reservation
	for rows.Next() {
		rsv, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expired reservation: %w", err)
		}
		res = append(res, rsv)
	}

	return res, rows.Err()
}

func (r *ReservationRepository) availableUnitsTx(
	ctx context.Context,
	tx *sql.Tx,
	skuID string,
	start, end time.Time,
	buffers domain.BufferConfig,
	excludeReservationID string,
	now time.Time,
) (int, error) {
	checkStart, checkEnd := bufferedWindow(start, end, buffers)

	var available int
	err := tx.QueryRowContext(
		ctx, availableUnitsQuery,
		skuID, nullableID(excludeReservationID), checkStart, checkEnd, now,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrSKUNotFound
		}
		return 0, classifyTxErr(fmt.Errorf("available units for sku %s: %w", skuID, err))
	}

	return available, nil
}

func (r *ReservationRepository) insertLineTx(ctx context.Context, tx *sql.Tx, ln domain.ReservationLine) error {
	const query = `
		INSERT INTO reservation_lines (id, reservation_id, sku_id, quantity, starts_at, ends_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := tx.ExecContext(
		ctx, query,
		ln.ID, ln.ReservationID, ln.SKUID, ln.Quantity, ln.StartsAt, ln.EndsAt, ln.Status, ln.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: %s", domain.ErrSKUNotFound, ln.SKUID)
		}
		return classifyTxErr(fmt.Errorf("insert line: %w", err))
	}
	return nil
}

func (r *ReservationRepository) getForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*domain.Reservation, error) {
	const query = `
		SELECT id, business_id, status, expires_at, customer_name, customer_email, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`

	res, err := scanReservation(tx.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, classifyTxErr(fmt.Errorf("get reservation for update: %w", err))
	}
	return res, nil
}

const selectLines = `
		SELECT id, reservation_id, sku_id, quantity, starts_at, ends_at, status, created_at
		FROM reservation_lines
		WHERE reservation_id = $1
		ORDER BY sku_id`

func (r *ReservationRepository) linesTx(ctx context.Context, tx *sql.Tx, reservationID string) ([]domain.ReservationLine, error) {
	rows, err := tx.QueryContext(ctx, selectLines, reservationID)
	if err != nil {
		return nil, classifyTxErr(fmt.Errorf("list lines: %w", err))
	}
	defer rows.Close()
	return collectLines(rows)
}

func (r *ReservationRepository) lines(ctx context.Context, reservationID string) ([]domain.ReservationLine, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, selectLines, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	defer rows.Close()
	return collectLines(rows)
}

func collectLines(rows *sql.Rows) ([]domain.ReservationLine, error) {
	var lines []domain.ReservationLine
	for rows.Next() {
		var ln domain.ReservationLine
		if err := rows.Scan(
			&ln.ID, &ln.ReservationID, &ln.SKUID, &ln.Quantity,
			&ln.StartsAt, &ln.EndsAt, &ln.Status, &ln.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}

func scanReservation(scan func(dest ...any) error) (*domain.Reservation, error) {
	var res domain.Reservation
	var expiresAt sql.NullTime
	if err := scan(
		&res.ID, &res.BusinessID, &res.Status, &expiresAt,
		&res.CustomerName, &res.CustomerEmail, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		res.ExpiresAt = &t
	}
	return &res, nil
}

// mergeLines applies promotion-time adjustments on top of the hold's lines:
// inputs matched by SKU replace quantity (and window, when given), unmatched
// inputs become new lines. A windowless input only makes sense for a matched
// SKU, where it means "keep the stored window"; a new SKU must bring its own.
// Every final line carries the target status.
func mergeLines(
	res *domain.Reservation,
	existing []domain.ReservationLine,
	inputs []domain.LineInput,
	status domain.ReservationStatus,
	now time.Time,
) ([]domain.ReservationLine, error) {
	bySKU := make(map[string]int, len(existing))
	final := make([]domain.ReservationLine, len(existing))
	copy(final, existing)
	for i := range final {
		final[i].Status = status
		bySKU[final[i].SKUID] = i
	}

	for _, in := range inputs {
		if i, ok := bySKU[in.SKUID]; ok {
			final[i].Quantity = in.Quantity
			if !in.StartsAt.IsZero() {
				final[i].StartsAt = in.StartsAt
				final[i].EndsAt = in.EndsAt
			}
			continue
		}
		if in.StartsAt.IsZero() {
			return nil, fmt.Errorf("%w: sku %s is not on the reservation, a window is required", domain.ErrValidation, in.SKUID)
		}
		final = append(final, domain.ReservationLine{
			ID:            uuid.New().String(),
			ReservationID: res.ID,
			SKUID:         in.SKUID,
			Quantity:      in.Quantity,
			StartsAt:      in.StartsAt,
			EndsAt:        in.EndsAt,
			Status:        status,
			CreatedAt:     now,
		})
	}

	return final, nil
}

// bufferedWindow computes the check window for a requested rental. Buffers
// belong to the existing lines: a line occupies [starts_at-Before,
// ends_at+After], so the stored coordinates are compared against the request
// widened by the mirrored buffers (start-After, end+Before). Zero buffers
// degenerate to the exact window.
func bufferedWindow(start, end time.Time, buffers domain.BufferConfig) (time.Time, time.Time) {
	return start.Add(-buffers.After), end.Add(buffers.Before)
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
