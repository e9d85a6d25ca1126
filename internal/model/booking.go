package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"    // Записан, ожидает приёма
	BookingStatusRunning   BookingStatus = "running"   // На приёме у врача
	BookingStatusCompleted BookingStatus = "completed" // Приём завершён
	BookingStatusCancelled BookingStatus = "cancelled" // Запись отменена
)

// bookingTransitions допустимые переходы статусов записи
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusBooked:  {BookingStatusRunning, BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusRunning: {BookingStatusCompleted},
}

// CanTransition проверяет, разрешён ли переход из статуса s в статус to
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal возвращает true для статусов, из которых нет переходов
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// IsActive возвращает true, если запись занимает слот
func (s BookingStatus) IsActive() bool {
	return s != BookingStatusCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusBooked, BookingStatusRunning, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking запись пациента к врачу на конкретный слот.
// SequenceNo - номер в очереди врача на дату, выдаётся 1, 2, 3... в порядке создания.
type Booking struct {
	ID           int64         `json:"id"`
	Reference    uuid.UUID     `json:"reference"`
	DoctorID     int64         `json:"doctor_id"`
	Date         Date          `json:"date"`
	Time         TimeOfDay     `json:"time"`
	SequenceNo   int           `json:"sequence_no"`
	PatientName  string        `json:"patient_name"`
	PatientPhone string        `json:"patient_phone"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`

	// Дополнительные поля для удобства (не из БД)
	Doctor *Doctor `json:"doctor,omitempty"`
}

// SlotTime возвращает момент начала приёма в зоне loc
func (b *Booking) SlotTime(loc *time.Location) time.Time {
	return b.Date.At(b.Time, loc)
}

// BookingRequest параметры создания записи
type BookingRequest struct {
	DoctorID     int64
	Date         Date
	Time         TimeOfDay
	PatientName  string
	PatientPhone string
}
