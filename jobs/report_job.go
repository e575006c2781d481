package jobs

import (
	"encoding/base64"
	"fmt"
	"log"
	"time"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/notifications"
	"github.com/akashpawar6363/sanjay-study-center/utils"
	"github.com/xuri/excelize/v2"
)

type ReportResult struct {
	Count int  `json:"count"`
	Sent  bool `json:"sent"`
}

// SendExpiringAdmissionsReport emails the admin an Excel sheet of every
// active admission expiring tomorrow. No expiring admissions means no email.
func SendExpiringAdmissionsReport() ReportResult {
	log.Println("Running job: SendExpiringAdmissionsReport...")

	tomorrow := utils.StartOfDay(time.Now()).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var expiring []models.Admission
	err := database.DB.
		Preload("Category").
		Where("status = ? AND renewal_date >= ? AND renewal_date < ?",
			models.AdmissionStatusActive, tomorrow, dayAfter).
		Order("seat_no asc").
		Find(&expiring).Error
	if err != nil {
		log.Printf("🔥 Error fetching expiring admissions for report: %v", err)
		return ReportResult{}
	}

	result := ReportResult{Count: len(expiring)}
	if len(expiring) == 0 {
		log.Println("No admissions expiring tomorrow, skipping report.")
		return result
	}

	var admin models.User
	if err := database.DB.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		log.Printf("🔥 Admin user not found, cannot send report: %v", err)
		return result
	}

	reportBytes, err := buildExpiringAdmissionsSheet(expiring)
	if err != nil {
		log.Printf("🔥 Failed to build expiring admissions sheet: %v", err)
		return result
	}

	subject := fmt.Sprintf("Expiring Admissions Report - %s", tomorrow.Format("02 Jan 2006"))
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p><b>%d</b> admission(s) expire on %s. The full list is attached.</p>",
		admin.FullName, len(expiring), tomorrow.Format("02 Jan 2006"),
	)
	attachment := notifications.Attachment{
		Name:    fmt.Sprintf("expiring-admissions-%s.xlsx", tomorrow.Format("2006-01-02")),
		Content: base64.StdEncoding.EncodeToString(reportBytes),
	}

	err = notifications.Send(admin.FullName, admin.Email, subject, html, attachment)
	status := models.EmailStatusSent
	if err != nil {
		log.Printf("🔥 Failed to send expiring admissions report: %v", err)
		status = models.EmailStatusFailed
	} else {
		result.Sent = true
	}
	for _, admission := range expiring {
		notifications.LogEmail(admission.ID, models.EmailTypeAdminReport, admin.Email, subject, status)
	}

	return result
}

var reportColumns = []string{
	"Seat No", "Receipt No", "Student Name", "Email", "Mobile Number",
	"Category", "Fees", "Discount", "Admission Date", "Renewal Date",
	"Duration (Months)", "Payment Mode", "Status",
}

func buildExpiringAdmissionsSheet(admissions []models.Admission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expiring Admissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, admission := range admissions {
		categoryName := "N/A"
		if admission.Category != nil {
			categoryName = admission.Category.Name
		}
		row := []interface{}{
			admission.SeatNo,
			admission.ReceiptNo,
			admission.StudentName,
			admission.Email,
			admission.MobileNumber,
			categoryName,
			admission.Fees,
			admission.Discount,
			admission.AdmissionDate.Format("02/01/2006"),
			admission.RenewalDate.Format("02/01/2006"),
			admission.DurationMonths,
			admission.PaymentMode,
			admission.Status,
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
