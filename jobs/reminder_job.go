package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/notifications"
	"github.com/akashpawar6363/sanjay-study-center/utils"
)

// Spacing between outbound emails, to stay under the transport's rate limit.
var reminderSendDelay = time.Second

type SweepResults struct {
	Total   int `json:"total"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// SendRenewalReminders emails every active admission whose renewal date is
// exactly ExpiryWarningDays out. One record's failure never stops the sweep;
// the caller gets an aggregate tally.
func SendRenewalReminders() SweepResults {
	log.Println("Running job: SendRenewalReminders...")

	windowStart := utils.StartOfDay(time.Now()).AddDate(0, 0, utils.ExpiryWarningDays)
	windowEnd := windowStart.AddDate(0, 0, 1)

	var expiring []models.Admission
	err := database.DB.
		Preload("Category").
		Where("status = ? AND renewal_date >= ? AND renewal_date < ?",
			models.AdmissionStatusActive, windowStart, windowEnd).
		Find(&expiring).Error
	if err != nil {
		log.Printf("🔥 Error fetching expiring admissions: %v", err)
		return SweepResults{}
	}

	results := SweepResults{Total: len(expiring)}
	if len(expiring) == 0 {
		return results
	}

	for i, admission := range expiring {
		if admission.Email == "" {
			results.Skipped++
			continue
		}

		categoryName := "N/A"
		rate := 0.0
		if admission.Category != nil {
			categoryName = admission.Category.Name
			rate = admission.Category.Rate
		}

		subject := fmt.Sprintf("Renewal Reminder - Seat %d", admission.SeatNo)
		html, err := notifications.RenewalReminderHTML(notifications.ReminderEmailData{
			StudentName:   admission.StudentName,
			SeatNo:        admission.SeatNo,
			CategoryName:  categoryName,
			Rate:          rate,
			RenewalDate:   admission.RenewalDate.Format("02 Jan 2006"),
			DaysRemaining: utils.DaysUntilExpiry(admission.RenewalDate),
		})
		if err == nil {
			err = notifications.Send(admission.StudentName, admission.Email, subject, html)
		}

		status := models.EmailStatusSent
		if err != nil {
			log.Printf("🔥 Failed to send renewal reminder to %s: %v", admission.Email, err)
			status = models.EmailStatusFailed
			results.Failed++
		} else {
			results.Sent++
		}
		notifications.LogEmail(admission.ID, models.EmailTypeRenewalReminder, admission.Email, subject, status)

		if i < len(expiring)-1 {
			time.Sleep(reminderSendDelay)
		}
	}

	log.Printf("Renewal reminder sweep done: %d total, %d sent, %d failed, %d skipped",
		results.Total, results.Sent, results.Failed, results.Skipped)
	return results
}
