package domain

import "errors"

var (
	ErrBusinessNotFound    = errors.New("business not found")
	ErrSKUNotFound         = errors.New("sku not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

var (
	ErrReservationConflict = errors.New("not enough units available")
	ErrReservationExpired  = errors.New("reservation hold has expired")
	ErrReservationClosed   = errors.New("reservation is already cancelled or completed")
	ErrDuplicateHold       = errors.New("reservation id already exists")
)

var (
	ErrValidation      = errors.New("validation error")
	ErrInvalidTimeZone = errors.New("unrecognized time zone")
	ErrInvalidDateTime = errors.New("invalid date or time")
)

// Transaction attempt classification. The repository maps every database
// failure to one of these (or leaves it untouched as fatal) before it reaches
// the service retry loop; callers never see raw driver errors.
var (
	// ErrTxConflict: serialization failure, deadlock, or a constraint the
	// database raised instead of the application check. Retryable; surfaced
	// as ErrReservationConflict once the retry budget is spent.
	ErrTxConflict = errors.New("transaction conflict")
	// ErrTxTransient: timeout or connectivity failure. Retryable; surfaced
	// as ErrTemporarilyUnavailable once the retry budget is spent.
	ErrTxTransient = errors.New("transient database failure")
)

var ErrTemporarilyUnavailable = errors.New("temporarily unavailable, please try again")
