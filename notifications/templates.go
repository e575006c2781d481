package notifications

import (
	"bytes"
	"html/template"
)

type ReceiptEmailData struct {
	StudentName  string
	SeatNo       int
	ReceiptNo    string
	CategoryName string
	Fees         float64
	Discount     float64
	DurationText string
	StartDate    string
	RenewalDate  string
	MobileNumber string
	PaymentMode  string
	SignatureURL string
}

type ReminderEmailData struct {
	StudentName   string
	SeatNo        int
	CategoryName  string
	Rate          float64
	RenewalDate   string
	DaysRemaining int
}

var receiptTmpl = template.Must(template.New("admission_receipt").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #1e40af; color: #ffffff; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">Sanjay Study Center</h1>
    <p style="margin: 4px 0 0;">Admission Receipt</p>
  </div>
  <div style="padding: 20px; border: 1px solid #e5e7eb;">
    <p>Dear {{.StudentName}},</p>
    <p>Thank you for your admission. Here are your details:</p>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Receipt No</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.ReceiptNo}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Seat No</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.SeatNo}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Category</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.CategoryName}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Duration</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.DurationText}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Fees Paid</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">&#8377;{{printf "%.2f" .Fees}}</td></tr>
      {{if gt .Discount 0.0}}<tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Discount</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">&#8377;{{printf "%.2f" .Discount}}</td></tr>{{end}}
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Payment Mode</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.PaymentMode}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Admission Date</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.StartDate}}</td></tr>
      <tr><td style="padding: 6px;"><b>Renewal Date</b></td><td style="padding: 6px;">{{.RenewalDate}}</td></tr>
    </table>
    <p style="margin-top: 16px;">Please renew on or before <b>{{.RenewalDate}}</b> to keep your seat.</p>
    {{if .SignatureURL}}
    <div style="margin-top: 24px; text-align: right;">
      <img src="{{.SignatureURL}}" alt="Authorized Signature" style="max-height: 60px;" />
      <p style="margin: 4px 0 0; font-size: 12px; color: #6b7280;">Authorized Signature</p>
    </div>
    {{end}}
  </div>
  <p style="text-align: center; font-size: 12px; color: #6b7280; padding: 12px;">This is an automated receipt. For queries contact the front desk.</p>
</div>`))

var reminderTmpl = template.Must(template.New("renewal_reminder").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #b45309; color: #ffffff; padding: 20px; text-align: center;">
    <h1 style="margin: 0;">Sanjay Study Center</h1>
    <p style="margin: 4px 0 0;">Renewal Reminder</p>
  </div>
  <div style="padding: 20px; border: 1px solid #e5e7eb;">
    <p>Dear {{.StudentName}},</p>
    <p>Your seat admission is expiring in <b>{{.DaysRemaining}} day(s)</b>.</p>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Seat No</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.SeatNo}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Category</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">{{.CategoryName}}</td></tr>
      <tr><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;"><b>Monthly Rate</b></td><td style="padding: 6px; border-bottom: 1px solid #e5e7eb;">&#8377;{{printf "%.2f" .Rate}}</td></tr>
      <tr><td style="padding: 6px;"><b>Renewal Date</b></td><td style="padding: 6px;">{{.RenewalDate}}</td></tr>
    </table>
    <p style="margin-top: 16px;">Please visit the center to renew and keep your seat reserved.</p>
  </div>
</div>`))

func AdmissionReceiptHTML(data ReceiptEmailData) (string, error) {
	var rendered bytes.Buffer
	if err := receiptTmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func RenewalReminderHTML(data ReminderEmailData) (string, error) {
	var rendered bytes.Buffer
	if err := reminderTmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}
