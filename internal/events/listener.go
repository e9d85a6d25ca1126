package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ActionComplete команда персонала завершить приём
const ActionComplete = "complete"

// StaffCommand сообщение из очереди команд персонала
type StaffCommand struct {
	Action    string     `json:"action"`
	DoctorID  int64      `json:"doctor_id"`
	Date      model.Date `json:"date"`
	BookingID int64      `json:"booking_id"`
}

// VisitCompleter завершает приём
type VisitCompleter interface {
	CompleteVisit(ctx context.Context, doctorID int64, date model.Date, bookingID int64) (*model.Booking, error)
}

type disposition int

const (
	dispositionAck     disposition = iota // обработано или отклонено по бизнес-правилам
	dispositionDrop                       // сообщение не разобрать, повтор не поможет
	dispositionRequeue                    // сбой хранилища, повторить позже
)

// StaffListener читает команды персонала из очереди
type StaffListener struct {
	channel   *amqp.Channel
	queue     string
	completer VisitCompleter
	logger    *zap.Logger
}

func NewStaffListener(conn *amqp.Connection, queue string, completer VisitCompleter, logger *zap.Logger) (*StaffListener, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &StaffListener{
		channel:   channel,
		queue:     queue,
		completer: completer,
		logger:    logger,
	}, nil
}

// Start объявляет очередь и запускает обработку сообщений до отмены ctx
func (l *StaffListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", l.queue, err)
	}

	if err := l.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue.Name, err)
	}

	l.logger.Info("Staff command listener started", zap.String("queue", queue.Name))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("Staff command channel closed")
					return
				}
				l.settle(msg, l.handle(ctx, msg.Body))
			}
		}
	}()

	return nil
}

func (l *StaffListener) settle(msg amqp.Delivery, d disposition) {
	var err error
	switch d {
	case dispositionAck:
		err = msg.Ack(false)
	case dispositionDrop:
		err = msg.Nack(false, false)
	case dispositionRequeue:
		err = msg.Nack(false, true)
	}
	if err != nil {
		l.logger.Error("Failed to settle staff command", zap.Error(err))
	}
}

func (l *StaffListener) handle(ctx context.Context, body []byte) disposition {
	var cmd StaffCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		l.logger.Warn("Malformed staff command", zap.ByteString("body", body), zap.Error(err))
		return dispositionDrop
	}

	if cmd.Action != ActionComplete {
		l.logger.Warn("Unknown staff command action", zap.String("action", cmd.Action))
		return dispositionDrop
	}

	if cmd.Date.IsZero() || cmd.DoctorID <= 0 || cmd.BookingID <= 0 {
		l.logger.Warn("Incomplete staff command", zap.ByteString("body", body))
		return dispositionDrop
	}

	booking, err := l.completer.CompleteVisit(ctx, cmd.DoctorID, cmd.Date, cmd.BookingID)
	if err != nil {
		if !service.IsRejection(err) {
			l.logger.Error("Failed to complete visit, requeueing",
				zap.Int64("booking_id", cmd.BookingID),
				zap.Error(err))
			return dispositionRequeue
		}
		l.logger.Info("Staff command rejected",
			zap.Int64("booking_id", cmd.BookingID),
			zap.Error(err))
		return dispositionAck
	}

	l.logger.Info("Visit completed from staff queue",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("doctor_id", booking.DoctorID),
		zap.Int("sequence_no", booking.SequenceNo))

	return dispositionAck
}

func (l *StaffListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}
	return l.channel.Close()
}
