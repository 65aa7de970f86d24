// Package events publishes storefront events to RabbitMQ so downstream
// consumers (fulfillment, notification) can react to new orders. The broker
// is optional: without one configured the storefront runs standalone.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/orders"
)

const OrderCreatedExchange = "order_created_exchange"

type OrderCreatedEvent struct {
	OrderID       string  `json:"orderId"`
	Email         string  `json:"email"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
	CreatedAt     string  `json:"createdAt"`
}

// OrderCreatedPublisher fans out one message per created order on a durable
// fanout exchange.
type OrderCreatedPublisher struct {
	logger     logs.Logger
	connection *amqp091.Connection
	channel    *amqp091.Channel
}

func NewOrderCreatedPublisher(logger logs.Logger, url string) (*OrderCreatedPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		OrderCreatedExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	logger.Info("connected to RabbitMQ", "exchange", OrderCreatedExchange)
	return &OrderCreatedPublisher{
		logger:     logger,
		connection: conn,
		channel:    ch,
	}, nil
}

func (p *OrderCreatedPublisher) PublishOrderCreated(ctx context.Context, order orders.Order) error {
	event := OrderCreatedEvent{
		OrderID:       order.ID,
		Email:         order.Shipping.Email,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	}

	return p.channel.PublishWithContext(ctx,
		OrderCreatedExchange,
		"",
		false,
		false,
		publishing,
	)
}

func (p *OrderCreatedPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.connection != nil {
		p.connection.Close()
	}
	p.logger.Info("RabbitMQ connection closed")
}
