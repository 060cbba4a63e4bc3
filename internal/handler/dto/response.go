package dto

import (
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
)

type ReservationLineResponse struct {
	ID       string `json:"id"`
	SKUID    string `json:"sku_id"`
	Quantity int    `json:"quantity"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	Status   string `json:"status"`
}

type ReservationResponse struct {
	ID            string                    `json:"id"`
	BusinessID    string                    `json:"business_id"`
	Status        string                    `json:"status"`
	ExpiresAt     *string                   `json:"expires_at,omitempty"`
	CustomerName  string                    `json:"customer_name,omitempty"`
	CustomerEmail string                    `json:"customer_email,omitempty"`
	CreatedAt     string                    `json:"created_at"`
	Lines         []ReservationLineResponse `json:"lines"`
}

type AvailabilityResponse struct {
	SKUID          string `json:"sku_id"`
	StartsAt       string `json:"starts_at"`
	EndsAt         string `json:"ends_at"`
	AvailableUnits int    `json:"available_units"`
}

type BusinessResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	TimeZone            string `json:"time_zone"`
	BufferBeforeMinutes int    `json:"buffer_before_minutes"`
	BufferAfterMinutes  int    `json:"buffer_after_minutes"`
	TelegramChatID      *int64 `json:"telegram_chat_id,omitempty"`
	CreatedAt           string `json:"created_at"`
}

type SKUResponse struct {
	ID            string `json:"id"`
	BusinessID    string `json:"business_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	CreatedAt     string `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	lines := make([]ReservationLineResponse, 0, len(r.Lines))
	for _, ln := range r.Lines {
		lines = append(lines, ReservationLineResponse{
			ID:       ln.ID,
			SKUID:    ln.SKUID,
			Quantity: ln.Quantity,
			StartsAt: ln.StartsAt.Format(time.RFC3339),
			EndsAt:   ln.EndsAt.Format(time.RFC3339),
			Status:   string(ln.Status),
		})
	}

	resp := ReservationResponse{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		Status:        string(r.Status),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		Lines:         lines,
	}
	if r.ExpiresAt != nil {
		s := r.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &s
	}

	return resp
}

func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		ID:                  b.ID,
		Name:                b.Name,
		TimeZone:            b.TimeZone,
		BufferBeforeMinutes: int(b.BufferBefore / time.Minute),
		BufferAfterMinutes:  int(b.BufferAfter / time.Minute),
		TelegramChatID:      b.TelegramChatID,
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
	}
}

func ToSKUResponse(s *domain.InventorySKU) SKUResponse {
	return SKUResponse{
		ID:            s.ID,
		BusinessID:    s.BusinessID,
		Name:          s.Name,
		TotalQuantity: s.TotalQuantity,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}
