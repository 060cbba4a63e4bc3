package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusHold      ReservationStatus = "hold"
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// LiveStatuses are the statuses that may count against availability. A hold
// additionally requires an unexpired expires_at, see Reservation.IsLive.
var LiveStatuses = []ReservationStatus{
	ReservationStatusHold,
	ReservationStatusPending,
	ReservationStatusConfirmed,
}

// ReservationLine claims a quantity of one SKU for an exact, unbuffered
// rental window [StartsAt, EndsAt).
type ReservationLine struct {
	ID            string            `json:"id"`
	ReservationID string            `json:"reservation_id"`
	SKUID         string            `json:"sku_id"`
	Quantity      int               `json:"quantity"`
	StartsAt      time.Time         `json:"starts_at"`
	EndsAt        time.Time         `json:"ends_at"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

type Reservation struct {
	ID            string            `json:"id"`
	BusinessID    string            `json:"business_id"`
	Status        ReservationStatus `json:"status"`
	ExpiresAt     *time.Time        `json:"expires_at,omitempty"`
	CustomerName  string            `json:"customer_name,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	Lines         []ReservationLine `json:"lines"`
}

// IsLive reports whether the reservation counts against availability at the
// given instant. An expired hold is logically dead even if its row still
// exists.
func (r *Reservation) IsLive(now time.Time) bool {
	switch r.Status {
	case ReservationStatusPending, ReservationStatusConfirmed:
		return true
	case ReservationStatusHold:
		return r.ExpiresAt != nil && r.ExpiresAt.After(now)
	default:
		return false
	}
}

// LineInput is one requested line of a hold or a promotion.
type LineInput struct {
	SKUID    string
	Quantity int
	StartsAt time.Time
	EndsAt   time.Time
}

// HoldInput is a placeHold request. ReservationID is optional: clients that
// supply their own id can safely replay the request after a network failure.
type HoldInput struct {
	ReservationID string
	BusinessID    string
	Lines         []LineInput
}

// PromoteInput finalizes a hold. Lines may adjust existing lines (matched by
// SKU) or add new ones; a line with a zero StartsAt keeps the window already
// stored for that SKU.
type PromoteInput struct {
	Status        ReservationStatus
	CustomerName  string
	CustomerEmail string
	Lines         []LineInput
}
