package services

import (
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"

	"kisima-schools/app/config"
	"kisima-schools/app/models"
)

// Mailer sends transactional email through the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}

// SendReceiptEmail mails the payment confirmation to the student's
// parent. Students without a parent email on file are skipped silently.
func (m *Mailer) SendReceiptEmail(student *models.Student, payment *models.Payment) error {
	if student.ParentEmail == nil || *student.ParentEmail == "" {
		return nil
	}

	amount := strconv.FormatFloat(payment.Amount, 'f', -1, 64)
	body := fmt.Sprintf(
		`<p>Dear Parent,</p>
		<p>We have received a payment of <strong>UGX %s</strong> for %s.</p>
		<p>Receipt No: %s<br>Method: %s</p>
		<p>Thank you,<br>Kisima Schools</p>`,
		amount, student.FullName(), payment.ReceiptID, payment.Method,
	)

	return m.send(*student.ParentEmail,
		fmt.Sprintf("Payment Receipt %s", payment.ReceiptID), body)
}

// SendFeeReminderEmail mails an overdue-fee reminder to a parent.
func (m *Mailer) SendFeeReminderEmail(to, studentName, feeTitle, currency string, amount float64) error {
	body := fmt.Sprintf(
		`<p>Dear Parent,</p>
		<p>This is a reminder that the fee <strong>%s</strong> (%s %s) for %s is overdue.</p>
		<p>Please clear the balance at your branch office.</p>
		<p>Thank you,<br>Kisima Schools</p>`,
		feeTitle, currency, strconv.FormatFloat(amount, 'f', -1, 64), studentName,
	)

	return m.send(to, "Fee Payment Reminder", body)
}
