package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	EventLeadCreated          = "lead.created"
	EventDealStageChanged     = "deal.stage_changed"
	EventInvoiceStatusChanged = "invoice.status_changed"
)

// Event is an informational domain event. Consumers must tolerate missing
// keys in Data.
type Event struct {
	Type       string            `json:"type"`
	EntityID   string            `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data,omitempty"`
}

type DeliveryItem struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceDeliveryPayload carries everything the worker needs to e-mail an
// invoice without reading the store again.
type InvoiceDeliveryPayload struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	LeadName      string          `json:"lead_name"`
	Email         string          `json:"email"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Items         []DeliveryItem  `json:"items"`
}

type QueueProducerInterface interface {
	PublishEvent(ctx context.Context, event Event) error
	PublishInvoiceDelivery(ctx context.Context, payload InvoiceDeliveryPayload) error
}

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channelPublisher
}

func NewProducer(ch channelPublisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishEvent(ctx context.Context, event Event) error {
	return p.publish(ctx, event.Type, event)
}

func (p *RabbitMQProducer) PublishInvoiceDelivery(ctx context.Context, payload InvoiceDeliveryPayload) error {
	return p.publish(ctx, DeliveryRoutingKey, payload)
}

func (p *RabbitMQProducer) publish(ctx context.Context, routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", routingKey, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// LogProducer stands in when no broker is configured: events are logged and
// invoice deliveries are skipped.
type LogProducer struct {
	log *logrus.Entry
}

func NewLogProducer(log *logrus.Logger) *LogProducer {
	return &LogProducer{log: log.WithField("component", "events")}
}

func (p *LogProducer) PublishEvent(ctx context.Context, event Event) error {
	p.log.WithFields(logrus.Fields{
		"type":      event.Type,
		"entity_id": event.EntityID,
	}).Debug("event recorded")
	return nil
}

func (p *LogProducer) PublishInvoiceDelivery(ctx context.Context, payload InvoiceDeliveryPayload) error {
	p.log.WithFields(logrus.Fields{
		"invoice": payload.InvoiceNumber,
		"to":      payload.Email,
	}).Warn("no broker configured, invoice e-mail not sent")
	return nil
}
