package domain

import "time"

// InventorySKU is a rentable inventory type with a fixed count of
// interchangeable physical units. Reservations reference a SKU and a quantity,
// never a specific unit.
type InventorySKU struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"business_id"`
	Name          string    `json:"name"`
	TotalQuantity int       `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateSKUInput struct {
	BusinessID    string
	Name          string
	TotalQuantity int
}
