package dto

// HoldItem is one requested SKU of a hold. Date and times are wall-clock
// strings in the request's effective time zone; empty values fall back to the
// request-level window.
type HoldItem struct {
	SKUID    string `json:"sku_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type PlaceHoldRequest struct {
	// Optional client-supplied id. Replaying the same id after a network
	// failure returns the hold the first request created.
	ReservationID string `json:"reservation_id" binding:"omitempty,uuid"`

	Date      string `json:"date" binding:"required"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	// Optional IANA zone override; defaults to the business's zone.
	TimeZone string `json:"time_zone"`

	Items []HoldItem `json:"items" binding:"required,min=1,dive"`
}

// PromoteItem amends one line during promotion. A zero window keeps the
// window the hold already stored for that SKU.
type PromoteItem struct {
	SKUID     string `json:"sku_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Date      string `json:"date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type PromoteRequest struct {
	Status        string        `json:"status" binding:"required,oneof=pending confirmed"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email" binding:"omitempty,email"`
	TimeZone      string        `json:"time_zone"`
	Items         []PromoteItem `json:"items" binding:"omitempty,dive"`
}

type CreateBusinessRequest struct {
	Name                string `json:"name" binding:"required"`
	TimeZone            string `json:"time_zone" binding:"required"`
	BufferBeforeMinutes int    `json:"buffer_before_minutes" binding:"gte=0"`
	BufferAfterMinutes  int    `json:"buffer_after_minutes" binding:"gte=0"`
	TelegramChatID      *int64 `json:"telegram_chat_id"`
}

type CreateSKURequest struct {
	Name          string `json:"name" binding:"required"`
	TotalQuantity int    `json:"total_quantity" binding:"gte=0"`
}
