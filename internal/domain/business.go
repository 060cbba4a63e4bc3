package domain

import "time"

// Business owns inventory and defines the buffer policy applied around every
// reservation of its items. Buffers are not stored per reservation, they are
// read from here at check time.
type Business struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	TimeZone       string        `json:"time_zone"`
	BufferBefore   time.Duration `json:"buffer_before"`
	BufferAfter    time.Duration `json:"buffer_after"`
	TelegramChatID *int64        `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// BufferConfig is the setup/teardown padding applied to a rental window when
// counting overlaps.
type BufferConfig struct {
	Before time.Duration
	After  time.Duration
}

func (b *Business) Buffers() BufferConfig {
	return BufferConfig{Before: b.BufferBefore, After: b.BufferAfter}
}

type CreateBusinessInput struct {
	Name           string
	TimeZone       string
	BufferBefore   time.Duration
	BufferAfter    time.Duration
	TelegramChatID *int64
}
