package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/lib/pq"
)

// Postgres error codes the reservation transaction cares about.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgExclusionViolation   = "23P01"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgQueryCanceled        = "57014"
	pgConnectionClass      = "08"
)

// classifyTxErr maps a failed transaction attempt onto the engine's
// Conflict | Transient | Fatal taxonomy. Conflicts and transients are
// retryable; anything unrecognized is returned as-is and treated as fatal so
// a logic bug is never retried.
func classifyTxErr(err error) error {
	if err == nil {
		return nil
	}

	// Already classified by application-level checks.
	if errors.Is(err, domain.ErrTxConflict) || errors.Is(err, domain.ErrTxTransient) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: attempt timed out", domain.ErrTxTransient)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: bad connection", domain.ErrTxTransient)
	}

	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrTxConflict, pgErr.Message)
		case pgErr.Code == pgExclusionViolation, pgErr.Code == pgUniqueViolation:
			// Database-enforced safety net fired past the application check.
			return fmt.Errorf("%w: %s", domain.ErrTxConflict, pgErr.Message)
		case pgErr.Code == pgQueryCanceled:
			return fmt.Errorf("%w: %s", domain.ErrTxTransient, pgErr.Message)
		case pgErr.Code.Class() == pgConnectionClass:
			return fmt.Errorf("%w: %s", domain.ErrTxTransient, pgErr.Message)
		}
	}

	return err
}
