package mail

import "github.com/xavierca1/ligue-crm/internal/infra/queue"

type InvoiceEmailData struct {
	queue.InvoiceDeliveryPayload
	DueDate string
	From    string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
