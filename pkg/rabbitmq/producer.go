// Package rabbitmq publishes transaction lifecycle events so downstream
// notification and reconciliation services can act on settlement changes
// without polling the ledger.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// Exchange and routing keys for transaction lifecycle events.
const (
	TransactionExchange = "kahawapay.transactions"

	RoutingKeyCreated  = "transaction.created"
	RoutingKeyPaid     = "transaction.paid"
	RoutingKeyArchived = "transaction.archived"
)

// TransactionEvent is the payload published on lifecycle changes.
type TransactionEvent struct {
	TransactionID int64           `json:"transaction_id"`
	Status        string          `json:"status"`
	AmountUSD     decimal.Decimal `json:"amount_usd"`
	Currency      string          `json:"currency"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	PublishTransactionEvent(ctx context.Context, routingKey string, event TransactionEvent) error
	Close()
}

// EventProducer holds the RabbitMQ connection and channel for publishing messages.
type EventProducer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NoopPublisher is used when AMQP is not configured; publishes are skipped
// with a warning so the ledger keeps working without a broker.
type NoopPublisher struct {
	Logger *slog.Logger
}

func (p *NoopPublisher) PublishTransactionEvent(ctx context.Context, routingKey string, event TransactionEvent) error {
	if p.Logger != nil {
		p.Logger.Warn("event publish skipped, no broker configured",
			slog.String("routing_key", routingKey),
			slog.Int64("transaction_id", event.TransactionID))
	}
	return nil
}

func (p *NoopPublisher) Close() {}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

// NewEventProducer dials the broker and declares the transaction exchange.
func NewEventProducer(amqpURL string) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, err
	}

	// Bounded dial timeout so startup does not hang on an unreachable broker.
	conn, err := amqp091.DialConfig(cleanURL, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(
		TransactionExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &EventProducer{conn: conn, channel: channel}, nil
}

// PublishTransactionEvent publishes one lifecycle event as persistent JSON.
func (p *EventProducer) PublishTransactionEvent(ctx context.Context, routingKey string, event TransactionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		TransactionExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Close shuts down the channel and connection.
func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
