package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

//go:embed templates/*.html
var templatesFS embed.FS

var invoiceTmpl = template.Must(template.ParseFS(templatesFS, "templates/invoice.html"))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// RenderInvoice builds the HTML body for an invoice e-mail.
func (s *EmailSender) RenderInvoice(payload queue.InvoiceDeliveryPayload) (string, error) {
	data := InvoiceEmailData{
		InvoiceDeliveryPayload: payload,
		DueDate:                payload.DueDate.Format("Jan 2, 2006"),
		From:                   s.From,
	}

	var body bytes.Buffer
	if err := invoiceTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render invoice template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) SendInvoice(ctx context.Context, payload queue.InvoiceDeliveryPayload) error {
	if payload.Email == "" {
		return errors.New("invoice has no recipient address")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := s.RenderInvoice(payload)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.Email)
	m.SetHeader("Subject", fmt.Sprintf("Invoice %s from %s", payload.InvoiceNumber, s.From))
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send invoice e-mail via smtp: %w", err)
	}
	return nil
}
