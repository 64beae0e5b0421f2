package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.crm"
	DLXName      = "ex.crm.dlx" // Dead Letter Exchange

	DeliveryQueue      = "q.invoice_delivery"
	DeliveryDLQ        = "q.invoice_delivery.dlq"
	DeliveryRoutingKey = "invoice.delivery_requested"
)

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare topology: %w", err)
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology declares the event exchange, the delivery queue and its
// dead-letter pair. Rejected deliveries end up in the DLQ.
func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DeliveryDLQ, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DeliveryDLQ, DeliveryRoutingKey, DLXName, false, nil); err != nil {
		return err
	}

	// topic exchange: consumers may bind to lead.*, deal.*, invoice.*
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": DeliveryRoutingKey,
	}
	if _, err := ch.QueueDeclare(DeliveryQueue, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(DeliveryQueue, DeliveryRoutingKey, ExchangeName, false, nil)
}

func (r *RabbitMQ) Close() error {
	if err := r.Ch.Close(); err != nil {
		r.Conn.Close()
		return err
	}
	return r.Conn.Close()
}

func (r *RabbitMQ) IsClosed() bool {
	return r.Conn == nil || r.Conn.IsClosed()
}
