package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingRunning   BookingEventType = "booking.running"
	EventBookingCompleted BookingEventType = "booking.completed"
	EventBookingCancelled BookingEventType = "booking.cancelled"
)

// EventTypeForStatus возвращает тип события перехода записи в статус
func EventTypeForStatus(status BookingStatus) BookingEventType {
	switch status {
	case BookingStatusRunning:
		return EventBookingRunning
	case BookingStatusCompleted:
		return EventBookingCompleted
	case BookingStatusCancelled:
		return EventBookingCancelled
	default:
		return EventBookingCreated
	}
}

// BookingEvent событие жизненного цикла записи для внешних подписчиков
type BookingEvent struct {
	ID         uuid.UUID        `json:"id"`
	Type       BookingEventType `json:"type"`
	OccurredAt time.Time        `json:"occurred_at"`
	Booking    *Booking         `json:"booking"`
}

// NewBookingEvent создаёт событие с новым идентификатором
func NewBookingEvent(eventType BookingEventType, booking *Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: at,
		Booking:    booking,
	}
}
