package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"flight-catering-api/pricing"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderEvent is published to the kitchen queue whenever an order is submitted
// or changes status. Amounts are integer cents, same as everywhere else.
type OrderEvent struct {
	OrderID    uint             `json:"order_id"`
	Reference  string           `json:"reference"`
	CustomerID uint             `json:"customer_id"`
	Type       string           `json:"type"` // submitted, status_changed, cancelled
	Status     string           `json:"status"`
	Location   pricing.Location `json:"location"`
	TotalCents int64            `json:"total_cents"`
	Occurred   time.Time        `json:"occurred"`
}

// Publisher pushes order events to RabbitMQ. A nil Publisher is valid and
// drops events, so the API keeps working without a broker.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher connects to the broker and declares the order exchange. An
// empty URL returns a nil (disabled) publisher.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish sends an order event with routing key "order.<type>". Failures are
// logged, not propagated: a broker outage must never block checkout.
func (p *Publisher) Publish(event OrderEvent) {
	if p == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to encode order event %s: %v", event.Reference, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		"order."+event.Type,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.Occurred,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("Failed to publish order event %s: %v", event.Reference, err)
	}
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
