package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Freeeeeet/doctor_booking/internal/config"
	"github.com/Freeeeeet/doctor_booking/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publishChannel часть *amqp.Channel, нужная публикатору
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// PublishObserver получает результат каждой публикации
type PublishObserver interface {
	ObserveEvent(eventType model.BookingEventType, err error)
}

// Publisher отправляет события записей в topic exchange.
// Ключ маршрутизации совпадает с типом события: booking.created, booking.completed ...
type Publisher struct {
	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	mu       sync.Mutex
	channel  publishChannel
	exchange string
	observer PublishObserver
	logger   *zap.Logger
}

// Dial подключается к RabbitMQ
func Dial(cfg config.RabbitMQConfig, logger *zap.Logger) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	logger.Info("Connected to RabbitMQ", zap.String("exchange", cfg.Exchange))
	return conn, nil
}

// NewPublisher открывает канал и объявляет exchange событий
func NewPublisher(conn *amqp.Connection, exchange string, observer PublishObserver, logger *zap.Logger) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return newPublisher(channel, exchange, observer, logger), nil
}

func newPublisher(channel publishChannel, exchange string, observer PublishObserver, logger *zap.Logger) *Publisher {
	return &Publisher{
		channel:  channel,
		exchange: exchange,
		observer: observer,
		logger:   logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, event *model.BookingEvent) error {
	err := p.publish(ctx, event)
	if p.observer != nil {
		p.observer.ObserveEvent(event.Type, err)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, event *model.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.channel.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug("Event published",
		zap.String("type", string(event.Type)),
		zap.String("event_id", msg.MessageId),
		zap.Int64("booking_id", event.Booking.ID))

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Close()
}
