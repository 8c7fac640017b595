package utils

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"os"
	"strconv"
	texttemplate "text/template"

	"github.com/aiaero/shopsite-api/invoice"
	gomail "gopkg.in/gomail.v2"
)

//go:embed templates/*.tmpl
var mailTemplates embed.FS

var (
	confirmationHTML = htmltemplate.Must(
		htmltemplate.ParseFS(mailTemplates, "templates/order_confirmation.html.tmpl"))
	confirmationText = texttemplate.Must(
		texttemplate.ParseFS(mailTemplates, "templates/order_confirmation.txt.tmpl"))
)

// SendOrderConfirmation mails the multipart confirmation to the customer and
// the operational monitoring address. pdf may be nil; the message then goes
// out without the attachment.
func SendOrderConfirmation(toEmail string, inv *invoice.Invoice, pdf []byte) error {
	var htmlBody bytes.Buffer
	if err := confirmationHTML.Execute(&htmlBody, inv); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}
	var textBody bytes.Buffer
	if err := confirmationText.Execute(&textBody, inv); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	from := os.Getenv("FROM_EMAIL")

	recipients := []string{toEmail}
	if ops := os.Getenv("ORDER_MONITOR_EMAIL"); ops != "" {
		recipients = append(recipients, ops)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("Thank you! Order #%d received", inv.OrderID))
	msg.SetBody("text/plain", textBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	if len(pdf) > 0 {
		filename := fmt.Sprintf("invoice-%d.pdf", inv.OrderID)
		msg.Attach(filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(pdf)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
		)
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	dialer := gomail.NewDialer(os.Getenv("FROM_EMAIL_SMTP"), port, from, os.Getenv("FROM_EMAIL_PASSWORD"))

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
