package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// publishTimeout bounds a single publish call.
const publishTimeout = 5 * time.Second

// AMQPPublisher publishes changes to a durable direct exchange.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewAMQPPublisher connects to the broker and declares the exchange, the
// queue and their binding.
func NewAMQPPublisher(url, exchangeName, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return p, nil
}

func (p *AMQPPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// The routing key is the queue name
	err = p.channel.QueueBind(p.queueName, p.queueName, p.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish sends the change as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, change Change) error {
	body, err := change.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    change.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish change: %w", err)
	}

	log.Debug().
		Str("component", "events").
		Str("profile", change.ProfileID.String()).
		Str("kind", string(change.Kind)).
		Int("added", len(change.Added)).
		Int("removed", len(change.Removed)).
		Msg("published change")

	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
