package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	config "github.com/akashpawar6363/sanjay-study-center/configs"
	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/notifications"
	"github.com/akashpawar6363/sanjay-study-center/utils"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateReceiptPDF renders the admission receipt to a PDF, uploads it and
// stores the URL on the admission. Runs after the create request has already
// returned; every failure is logged and dropped.
func GenerateReceiptPDF(admission models.Admission) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("⚠️ Cloudinary not configured, skipping receipt PDF generation.")
		return
	}

	categoryName := "N/A"
	if admission.Category != nil {
		categoryName = admission.Category.Name
	}
	signatureURL := ""
	if admission.DigitalSignatureURL != nil {
		signatureURL = *admission.DigitalSignatureURL
	}

	htmlData, err := notifications.AdmissionReceiptHTML(notifications.ReceiptEmailData{
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
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML for %s: %v", admission.ReceiptNo, err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF for %s: %v", admission.ReceiptNo, err)
		return
	}

	uploadURL, err := uploadReceiptPDF(pdfBytes, admission.ReceiptNo)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt PDF for %s: %v", admission.ReceiptNo, err)
		return
	}

	err = database.DB.Model(&models.Admission{}).
		Where("id = ?", admission.ID).
		Update("receipt_pdf_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to store receipt PDF URL for %s: %v", admission.ReceiptNo, err)
		return
	}

	log.Printf("✅ Generated and uploaded receipt PDF for %s.", admission.ReceiptNo)
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptPDF(fileBytes []byte, receiptNo string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", receiptNo, uuid.New().String()),
		Folder:       "study_center_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
