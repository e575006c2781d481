package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdmissionStatusActive  = "active"
	AdmissionStatusExpired = "expired"
	AdmissionStatusRenewed = "renewed"
)

const (
	PaymentModeCash   = "cash"
	PaymentModeOnline = "online"
)

// Admission is one student's seat admission cycle. RenewalDate is always
// AdmissionDate plus DurationMonths calendar months; it is re-derived on
// every create/update, never accepted from the client.
type Admission struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SeatNo         int        `gorm:"not null" json:"seat_no"`
	CategoryID     *uuid.UUID `gorm:"type:uuid" json:"category_id"`
	ReceiptNo      string     `gorm:"size:20;not null;unique" json:"receipt_no"`
	AdmissionDate  time.Time  `gorm:"type:date;not null" json:"admission_date"`
	DurationMonths int        `gorm:"not null" json:"duration_months"`
	RenewalDate    time.Time  `gorm:"type:date;not null" json:"renewal_date"`
	StudentName    string     `gorm:"size:255;not null" json:"student_name"`
	Email          string     `gorm:"size:255;not null" json:"email"`
	MobileNumber   string     `gorm:"size:10;not null" json:"mobile_number"`
	Fees           float64    `gorm:"type:numeric(10,2);not null" json:"fees"`
	Discount       float64    `gorm:"type:numeric(10,2);default:0" json:"discount"`
	PaymentMode    string     `gorm:"size:10;not null" json:"payment_mode"`
	Status         string     `gorm:"size:10;not null;default:'active'" json:"status"`

	DigitalSignatureURL *string `gorm:"size:255" json:"digital_signature_url"`
	ReceiptPDFURL       *string `gorm:"size:255" json:"receipt_pdf_url"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Category  *Category `gorm:"foreignkey:CategoryID" json:"category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Admission) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
