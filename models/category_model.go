package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a seat pricing tier. Rate is the monthly charge in INR.
// Default categories are seeded at boot and cannot be deleted.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Rate      float64   `gorm:"type:numeric(10,2);not null" json:"rate"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cat *Category) BeforeCreate(tx *gorm.DB) error {
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	return nil
}
