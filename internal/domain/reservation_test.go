package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_IsLive(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Second)

	tests := []struct {
		name string
		res  Reservation
		want bool
	}{
		{"hold not expired", Reservation{Status: ReservationStatusHold, ExpiresAt: &future}, true},
		{"hold expired", Reservation{Status: ReservationStatusHold, ExpiresAt: &past}, false},
		{"hold expiring exactly now", Reservation{Status: ReservationStatusHold, ExpiresAt: &now}, false},
		{"hold without expiry", Reservation{Status: ReservationStatusHold}, false},
		{"pending", Reservation{Status: ReservationStatusPending}, true},
		{"confirmed", Reservation{Status: ReservationStatusConfirmed}, true},
		{"cancelled", Reservation{Status: ReservationStatusCancelled}, false},
		{"completed", Reservation{Status: ReservationStatusCompleted}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.IsLive(now))
		})
	}
}
