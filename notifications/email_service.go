package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/akashpawar6363/sanjay-study-center/configs"
	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/google/uuid"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

var ErrNotConfigured = errors.New("email service not configured")

// Attachment content must already be base64-encoded, per the Brevo API.
type Attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
	Attachment  []Attachment        `json:"attachment,omitempty"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized successfully.")
}

func (s *BrevoService) send(toEmail, toName, subject, htmlContent string, attachments []Attachment) error {
	url := "https://api.brevo.com/v3/smtp/email"

	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
		Attachment:  attachments,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: %s", string(bodyBytes))
	}

	return nil
}

// Send delivers one transactional email and reports the outcome to the
// caller. Callers that need fire-and-forget semantics use SendEmail instead.
func Send(toName, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	if EmailClient == nil {
		return ErrNotConfigured
	}
	return EmailClient.send(toEmail, toName, subject, htmlContent, attachments)
}

func SendEmail(toName, toEmail, subject, htmlContent string) {
	err := Send(toName, toEmail, subject, htmlContent)
	if err != nil {
		log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
		return
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
}

// LogEmail appends an audit row for a send attempt. Audit failures are logged
// and swallowed: the trail is best-effort and never read back by business
// logic.
func LogEmail(admissionID uuid.UUID, emailType, recipient, subject, status string) {
	entry := models.EmailLog{
		AdmissionID:    admissionID,
		EmailType:      emailType,
		RecipientEmail: recipient,
		Subject:        subject,
		Status:         status,
		SentAt:         time.Now(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("🔥 Failed to write email log for admission %s: %v", admissionID, err)
	}
}
