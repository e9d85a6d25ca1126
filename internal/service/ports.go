package service

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// ScheduleStore источник недельных часов приёма и исключений
type ScheduleStore interface {
	GetOpenHours(ctx context.Context, doctorID int64, dayOfWeek int) ([]*model.OpenHours, error)
	GetException(ctx context.Context, doctorID int64, date model.Date) (*model.Exception, error)
}

// BookingStore хранилище записей
type BookingStore interface {
	Allocate(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ActiveTimes(ctx context.Context, doctorID int64, date model.Date) ([]model.TimeOfDay, error)
	FindActivePatientBooking(ctx context.Context, doctorID int64, date model.Date, phone string) (*model.Booking, error)
	QueueCounters(ctx context.Context, doctorID int64, date model.Date) (watermark int, waiting int, err error)
	DayStats(ctx context.Context, doctorID int64, date model.Date) (*model.DayStats, error)
	ListByDay(ctx context.Context, doctorID int64, date model.Date) ([]*model.Booking, error)
	ListByPatient(ctx context.Context, phone string, limit int) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)
}

// DoctorStore справочник врачей
type DoctorStore interface {
	GetByID(ctx context.Context, id int64) (*model.Doctor, error)
	ListByCity(ctx context.Context, city string) ([]*model.Doctor, error)
	ListByHospital(ctx context.Context, hospital string) ([]*model.Doctor, error)
	ListCities(ctx context.Context) ([]string, error)
	ListHospitals(ctx context.Context, city string) ([]string, error)
}

// UserStore профили пользователей бота
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetLastDoctor(ctx context.Context, userID, doctorID int64) error
}

// EventPublisher отправляет события записей внешним подписчикам
type EventPublisher interface {
	Publish(ctx context.Context, event *model.BookingEvent) error
}

// BookingMetrics счётчики исходов записи и смен статусов
type BookingMetrics interface {
	ObserveBooking(outcome string)
	ObserveTransition(to model.BookingStatus)
}

// Исходы попытки записи для метрик
const (
	OutcomeCreated     = "created"
	OutcomeInvalid     = "invalid"
	OutcomePastTime    = "past_time"
	OutcomeDuplicate   = "duplicate"
	OutcomeUnavailable = "unavailable"
	OutcomeRace        = "race"
	OutcomeStorage     = "storage_error"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *model.BookingEvent) error { return nil }

type noopMetrics struct{}

func (noopMetrics) ObserveBooking(string)                 {}
func (noopMetrics) ObserveTransition(model.BookingStatus) {}
