package handlers

import (
	"fmt"
	"log"
	"regexp"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/notifications"
	"github.com/akashpawar6363/sanjay-study-center/services"
	"github.com/akashpawar6363/sanjay-study-center/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var indianMobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)

type AdmissionRequest struct {
	SeatNo         int     `json:"seat_no" validate:"required,min=1"`
	CategoryID     string  `json:"category_id" validate:"required,uuid"`
	AdmissionDate  string  `json:"admission_date" validate:"required,datetime=2006-01-02"`
	DurationMonths int     `json:"duration_months" validate:"required,min=1,max=12"`
	StudentName    string  `json:"student_name" validate:"required,min=2"`
	Email          string  `json:"email" validate:"required,email"`
	MobileNumber   string  `json:"mobile_number" validate:"required"`
	Fees           float64 `json:"fees" validate:"min=0"`
	Discount       float64 `json:"discount" validate:"min=0"`
	PaymentMode    string  `json:"payment_mode" validate:"required,oneof=cash online"`
	Status         string  `json:"status" validate:"omitempty,oneof=active expired renewed"`
}

// AdmissionResponse decorates the stored record with the expiry
// classification the dashboard tables need.
type AdmissionResponse struct {
	models.Admission
	DaysUntilExpiry int  `json:"days_until_expiry"`
	IsExpired       bool `json:"is_expired"`
	IsExpiringSoon  bool `json:"is_expiring_soon"`
}

func toAdmissionResponse(admission models.Admission) AdmissionResponse {
	return AdmissionResponse{
		Admission:       admission,
		DaysUntilExpiry: utils.DaysUntilExpiry(admission.RenewalDate),
		IsExpired:       utils.IsExpired(admission.RenewalDate),
		IsExpiringSoon:  utils.IsExpiringSoon(admission.RenewalDate),
	}
}

func CreateAdmission(c *fiber.Ctx) error {
	var req AdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !indianMobileRe.MatchString(req.MobileNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mobile number must be a valid 10-digit Indian mobile number"})
	}

	admissionDate, err := utils.ParseDate(req.AdmissionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid admission date"})
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var category models.Category
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	}

	// The submitted fee is trusted (manual overrides for negotiated pricing
	// are allowed) but a mismatch against the rate card is worth a trace.
	expectedFee := utils.ComputeFee(category.Rate, req.DurationMonths, req.Discount)
	if req.Fees != expectedFee {
		log.Printf("Fee override on create: submitted %.2f, rate card says %.2f (category %s, %d months, discount %.2f)",
			req.Fees, expectedFee, category.Name, req.DurationMonths, req.Discount)
	}

	creatorID, _ := uuid.Parse(middleware.CallerID(c))
	var creator models.User
	if err := database.DB.First(&creator, "id = ?", creatorID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unknown caller"})
	}

	renewalDate := utils.CalculateRenewalDate(admissionDate, req.DurationMonths)

	var admission models.Admission
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		receiptNo, _, err := services.NextReceiptNumber(tx)
		if err != nil {
			return err
		}

		admission = models.Admission{
			SeatNo:              req.SeatNo,
			CategoryID:          &category.ID,
			ReceiptNo:           receiptNo,
			AdmissionDate:       admissionDate,
			DurationMonths:      req.DurationMonths,
			RenewalDate:         renewalDate,
			StudentName:         req.StudentName,
			Email:               req.Email,
			MobileNumber:        req.MobileNumber,
			Fees:                req.Fees,
			Discount:            req.Discount,
			PaymentMode:         req.PaymentMode,
			Status:              models.AdmissionStatusActive,
			DigitalSignatureURL: creator.DigitalSignatureURL,
			CreatedBy:           creator.ID,
		}
		return tx.Create(&admission).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to create admission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create admission"})
	}

	admission.Category = &category

	sendAdmissionReceipt(admission)
	go services.GenerateReceiptPDF(admission)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"admission": toAdmissionResponse(admission)})
}

func ListAdmissions(c *fiber.Ctx) error {
	var admissions []models.Admission
	err := database.DB.Preload("Category").Order("created_at desc").Find(&admissions).Error
	if err != nil {
		log.Printf("🔥 Failed to list admissions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch admissions"})
	}

	responses := make([]AdmissionResponse, 0, len(admissions))
	for _, admission := range admissions {
		responses = append(responses, toAdmissionResponse(admission))
	}
	return c.JSON(fiber.Map{"admissions": responses})
}

func GetAdmission(c *fiber.Ctx) error {
	var admission models.Admission
	err := database.DB.Preload("Category").First(&admission, "id = ?", c.Params("admissionId")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admission not found"})
	}
	return c.JSON(fiber.Map{"admission": toAdmissionResponse(admission)})
}

func UpdateAdmission(c *fiber.Ctx) error {
	var admission models.Admission
	if err := database.DB.First(&admission, "id = ?", c.Params("admissionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admission not found"})
	}

	var req AdmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !indianMobileRe.MatchString(req.MobileNumber) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mobile number must be a valid 10-digit Indian mobile number"})
	}

	admissionDate, err := utils.ParseDate(req.AdmissionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid admission date"})
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	var category models.Category
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	}

	admission.SeatNo = req.SeatNo
	admission.CategoryID = &category.ID
	admission.AdmissionDate = admissionDate
	admission.DurationMonths = req.DurationMonths
	admission.RenewalDate = utils.CalculateRenewalDate(admissionDate, req.DurationMonths)
	admission.StudentName = req.StudentName
	admission.Email = req.Email
	admission.MobileNumber = req.MobileNumber
	admission.Fees = req.Fees
	admission.Discount = req.Discount
	admission.PaymentMode = req.PaymentMode
	// Status is a soft label: any edit may move it between
	// active/expired/renewed, there is no transition table.
	if req.Status != "" {
		admission.Status = req.Status
	}

	if err := database.DB.Save(&admission).Error; err != nil {
		log.Printf("🔥 Failed to update admission %s: %v", admission.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update admission"})
	}

	admission.Category = &category

	// Resend the receipt with the updated details. The update has already
	// committed; a send failure must not unwind it.
	sendAdmissionReceipt(admission)

	return c.JSON(fiber.Map{"admission": toAdmissionResponse(admission)})
}

func DeleteAdmission(c *fiber.Ctx) error {
	var admission models.Admission
	if err := database.DB.First(&admission, "id = ?", c.Params("admissionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admission not found"})
	}

	// Hard delete. Email logs keep their admission_id and go stale, which is
	// acceptable for an audit trail.
	if err := database.DB.Delete(&admission).Error; err != nil {
		log.Printf("🔥 Failed to delete admission %s: %v", admission.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete admission"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func sendAdmissionReceipt(admission models.Admission) {
	categoryName := "N/A"
	if admission.Category != nil {
		categoryName = admission.Category.Name
	}
	signatureURL := ""
	if admission.DigitalSignatureURL != nil {
		signatureURL = *admission.DigitalSignatureURL
	}

	subject := fmt.Sprintf("Admission Receipt - %s", admission.ReceiptNo)
	html, err := notifications.AdmissionReceiptHTML(notifications.ReceiptEmailData{
		StudentName:  admission.StudentName,
		SeatNo:       admission.SeatNo,
		ReceiptNo:    admission.ReceiptNo,
		CategoryName: categoryName,
		Fees:         admission.Fees,
		Discount:     admission.Discount,
		DurationText: utils.DurationText(admission.DurationMonths),
		StartDate:    admission.AdmissionDate.Format("02 Jan 2006"),
		RenewalDate:  admission.RenewalDate.Format("02 Jan 2006"),
		MobileNumber: admission.MobileNumber,
		PaymentMode:  admission.PaymentMode,
		SignatureURL: signatureURL,
	})
	if err == nil {
		err = notifications.Send(admission.StudentName, admission.Email, subject, html)
	}

	status := models.EmailStatusSent
	if err != nil {
		log.Printf("🔥 Failed to send admission receipt to %s: %v", admission.Email, err)
		status = models.EmailStatusFailed
	}
	notifications.LogEmail(admission.ID, models.EmailTypeAdmissionReceipt, admission.Email, subject, status)
}
