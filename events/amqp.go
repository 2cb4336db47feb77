package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-reservation/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher mirrors reservation events onto a topic exchange so external
// consumers (BI, reminder jobs) can react without polling the API. It is an
// optional subscriber, wired only when AMQP_URL is configured.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Handle publishes the event with its type as routing key. Failures are
// logged and dropped; broker trouble must never surface into the request
// path.
func (p *AMQPPublisher) Handle(event ReservationEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal reservation event", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		logger.Error("Failed to publish reservation event", err)
	}
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
