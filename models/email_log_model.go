package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmailTypeAdmissionReceipt = "admission_receipt"
	EmailTypeRenewalReminder  = "renewal_reminder"
	EmailTypeAdminReport      = "admin_report"
)

const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog is an append-only audit row. AdmissionID carries no foreign key
// on purpose: deleting an admission leaves its log rows dangling.
type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AdmissionID    uuid.UUID `gorm:"type:uuid;not null" json:"admission_id"`
	EmailType      string    `gorm:"size:30;not null" json:"email_type"`
	RecipientEmail string    `gorm:"size:255;not null" json:"recipient_email"`
	Subject        string    `gorm:"size:255" json:"subject"`
	Status         string    `gorm:"size:10;not null" json:"status"`
	SentAt         time.Time `json:"sent_at"`
}

func (e *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
