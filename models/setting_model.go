package models

import "time"

const (
	SettingReceiptCounter = "current_receipt_number"
	SettingTotalSeats     = "total_seats"
)

// Setting is a global key-value row. SettingReceiptCounter holds the last
// issued receipt integer and is only touched through the receipt sequencer.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
