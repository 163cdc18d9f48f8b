package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqp.Channelのうち使う部分だけ
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher は order.created をtopic exchangeに流す
type RabbitPublisher struct {
	ch       amqpChannel
	exchange string
}

// exchangeは起動時に1回だけ宣言する
func NewRabbitPublisher(ch *amqp.Channel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) NotifyOrderCreated(ctx context.Context, telegramID int64, order model.Order, shipping usecase.ShippingInfo) error {
	ev := newOrderCreatedEvent(telegramID, order, shipping)
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, EventOrderCreated, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
