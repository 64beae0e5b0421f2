package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// InvoiceMailer delivers an invoice e-mail.
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, payload InvoiceDeliveryPayload) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Worker consumes invoice delivery requests and hands them to the mailer.
type Worker struct {
	Channel consumer
	Mailer  InvoiceMailer
	log     *logrus.Entry
}

func NewWorker(ch consumer, mailer InvoiceMailer, log *logrus.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		log:     log.WithField("component", "delivery-worker"),
	}
}

// Start blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer on %s: %w", queueName, err)
	}

	w.log.WithField("queue", queueName).Info("worker waiting for deliveries")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				w.log.Warn("delivery channel closed")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks on success. Malformed bodies and mail failures are rejected
// without requeue so they land in the dead-letter queue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload InvoiceDeliveryPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.log.WithError(err).Error("malformed delivery payload")
		d.Nack(false, false)
		return
	}

	entry := w.log.WithFields(logrus.Fields{
		"invoice": payload.InvoiceNumber,
		"to":      payload.Email,
	})

	if err := w.Mailer.SendInvoice(ctx, payload); err != nil {
		entry.WithError(err).Error("invoice e-mail failed")
		d.Nack(false, false)
		return
	}

	entry.Info("invoice e-mailed")
	d.Ack(false)
}
