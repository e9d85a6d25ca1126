package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrDoctorNotFound    = errors.New("doctor not found")
)

// StorageError сбой хранилища. Локально не восстанавливается и отдаётся вызывающему.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// ValidationError некорректные входные данные записи
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PastTimeError запрошенное время приёма уже прошло
type PastTimeError struct {
	DoctorID int64
	Date     model.Date
	Time     model.TimeOfDay
	Now      time.Time
}

func (e *PastTimeError) Error() string {
	return fmt.Sprintf("slot %s %s for doctor %d is in the past (now %s)",
		e.Date, e.Time, e.DoctorID, e.Now.Format("2006-01-02 15:04"))
}

// DuplicatePatientBookingError у пациента уже есть запись к этому врачу на эту дату
type DuplicatePatientBookingError struct {
	DoctorID   int64
	Date       model.Date
	Time       model.TimeOfDay
	SequenceNo int
}

func (e *DuplicatePatientBookingError) Error() string {
	return fmt.Sprintf("patient already booked doctor %d on %s at %s (queue no %d)",
		e.DoctorID, e.Date, e.Time, e.SequenceNo)
}

// SlotUnavailableError слот не входит в список свободных на момент проверки
type SlotUnavailableError struct {
	DoctorID int64
	Date     model.Date
	Time     model.TimeOfDay
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("slot %s %s is not available for doctor %d", e.Date, e.Time, e.DoctorID)
}

// SlotRaceError слот занят параллельной записью между проверкой и вставкой.
// Вызывающий может повторить запись, заново запросив свободные слоты.
type SlotRaceError struct {
	DoctorID int64
	Date     model.Date
	Time     model.TimeOfDay
	Err      error
}

func (e *SlotRaceError) Error() string {
	return fmt.Sprintf("slot %s %s for doctor %d was taken concurrently, retry", e.Date, e.Time, e.DoctorID)
}

func (e *SlotRaceError) Unwrap() error {
	return e.Err
}

// IsRejection возвращает true для ожидаемых отказов в записи,
// которые нужно показать пользователю, а не считать сбоем
func IsRejection(err error) bool {
	var (
		validationErr  *ValidationError
		pastErr        *PastTimeError
		duplicateErr   *DuplicatePatientBookingError
		unavailableErr *SlotUnavailableError
		raceErr        *SlotRaceError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &pastErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &unavailableErr),
		errors.As(err, &raceErr),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrDoctorNotFound):
		return true
	}
	return false
}
