package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"github.com/Freeeeeet/doctor_booking/internal/repository"
	"github.com/Freeeeeet/doctor_booking/internal/repository/base"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MinPhoneLength минимальная длина телефона, по которому опознаётся пациент
	MinPhoneLength = 7
	// patientHistoryLimit наибольшее количество записей в истории пациента
	patientHistoryLimit = 200
)

// BookingInput данные формы записи в том виде, в котором их прислал клиент
type BookingInput struct {
	DoctorID     int64
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	PatientName  string
	PatientPhone string
}

type BookingService struct {
	bookings     BookingStore
	availability *AvailabilityService
	doctors      *DoctorService
	publisher    EventPublisher
	metrics      BookingMetrics
	clock        Clock
	locks        *dayLocks
	logger       *zap.Logger
}

func NewBookingService(
	bookings BookingStore,
	availability *AvailabilityService,
	doctors *DoctorService,
	publisher EventPublisher,
	metrics BookingMetrics,
	clock Clock,
	logger *zap.Logger,
) *BookingService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &BookingService{
		bookings:     bookings,
		availability: availability,
		doctors:      doctors,
		publisher:    publisher,
		metrics:      metrics,
		clock:        clock,
		locks:        newDayLocks(),
		logger:       logger,
	}
}

// ParseBookingInput проверяет формат полей формы записи
func ParseBookingInput(in BookingInput) (*model.BookingRequest, error) {
	if in.DoctorID <= 0 {
		return nil, &ValidationError{Field: "doctor_id", Value: fmt.Sprint(in.DoctorID)}
	}

	date, err := model.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, &ValidationError{Field: "date", Value: in.Date, Err: err}
	}

	tod, err := model.ParseTimeOfDay(strings.TrimSpace(in.Time))
	if err != nil {
		return nil, &ValidationError{Field: "time", Value: in.Time, Err: err}
	}

	name := strings.TrimSpace(in.PatientName)
	if name == "" {
		return nil, &ValidationError{Field: "patient_name", Value: in.PatientName}
	}

	phone := NormalizePhone(in.PatientPhone)
	if len(phone) < MinPhoneLength {
		return nil, &ValidationError{Field: "patient_phone", Value: in.PatientPhone}
	}

	return &model.BookingRequest{
		DoctorID:     in.DoctorID,
		Date:         date,
		Time:         tod,
		PatientName:  name,
		PatientPhone: phone,
	}, nil
}

// NormalizePhone приводит телефон пациента к виду, по которому он идентифицируется
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// CreateBooking записывает пациента к врачу на слот.
// Проверки выполняются по порядку: формат, время не в прошлом, нет другой записи
// пациента к врачу на эту дату, слот свободен. Проверка дубля, свободного слота
// и выдача номера очереди идут под блокировкой (врач, дата).
func (s *BookingService) CreateBooking(ctx context.Context, in BookingInput) (*model.Booking, error) {
	req, err := ParseBookingInput(in)
	if err != nil {
		s.reject(OutcomeInvalid, in.DoctorID, err)
		return nil, err
	}

	now := s.clock.Now()
	if req.Date.At(req.Time, now.Location()).Before(now) {
		err := &PastTimeError{DoctorID: req.DoctorID, Date: req.Date, Time: req.Time, Now: now}
		s.reject(OutcomePastTime, req.DoctorID, err)
		return nil, err
	}

	doctor, err := s.doctors.GetActiveDoctor(ctx, req.DoctorID)
	if err != nil {
		if !errors.Is(err, ErrDoctorNotFound) {
			s.metrics.ObserveBooking(OutcomeStorage)
		} else {
			s.reject(OutcomeInvalid, req.DoctorID, err)
		}
		return nil, err
	}

	unlock := s.locks.Lock(req.DoctorID, req.Date)
	defer unlock()

	existing, err := s.bookings.FindActivePatientBooking(ctx, req.DoctorID, req.Date, req.PatientPhone)
	if err != nil {
		s.metrics.ObserveBooking(OutcomeStorage)
		return nil, storageError("find patient booking", err)
	}
	if existing != nil {
		err := &DuplicatePatientBookingError{
			DoctorID:   req.DoctorID,
			Date:       req.Date,
			Time:       existing.Time,
			SequenceNo: existing.SequenceNo,
		}
		s.reject(OutcomeDuplicate, req.DoctorID, err)
		return nil, err
	}

	available, err := s.availability.IsAvailable(ctx, req.DoctorID, req.Date, req.Time)
	if err != nil {
		s.metrics.ObserveBooking(OutcomeStorage)
		return nil, err
	}
	if !available {
		err := &SlotUnavailableError{DoctorID: req.DoctorID, Date: req.Date, Time: req.Time}
		s.reject(OutcomeUnavailable, req.DoctorID, err)
		return nil, err
	}

	booking := &model.Booking{
		Reference:    uuid.New(),
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Time:         req.Time,
		PatientName:  req.PatientName,
		PatientPhone: req.PatientPhone,
		Status:       model.BookingStatusBooked,
	}

	if err := s.bookings.Allocate(ctx, booking); err != nil {
		if base.IsUniqueViolation(err, repository.ActiveSlotConstraint) ||
			base.IsUniqueViolation(err, repository.SequenceConstraint) {
			raceErr := &SlotRaceError{DoctorID: req.DoctorID, Date: req.Date, Time: req.Time, Err: err}
			s.reject(OutcomeRace, req.DoctorID, raceErr)
			return nil, raceErr
		}
		s.metrics.ObserveBooking(OutcomeStorage)
		s.logger.Error("Failed to allocate booking",
			zap.Int64("doctor_id", req.DoctorID),
			zap.Stringer("date", req.Date),
			zap.Stringer("time", req.Time),
			zap.Error(err))
		return nil, storageError("allocate booking", err)
	}

	booking.Doctor = doctor
	s.metrics.ObserveBooking(OutcomeCreated)

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("doctor_id", booking.DoctorID),
		zap.Stringer("date", booking.Date),
		zap.Stringer("time", booking.Time),
		zap.Int("sequence_no", booking.SequenceNo))

	s.publish(ctx, model.EventBookingCreated, booking)

	return booking, nil
}

// StartVisit отмечает, что пациент вызван на приём
func (s *BookingService) StartVisit(ctx context.Context, doctorID int64, date model.Date, bookingID int64) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusRunning, belongsToDoctorDay(doctorID, date))
}

// CompleteVisit отмечает приём завершённым. Повторное завершение не считается ошибкой.
func (s *BookingService) CompleteVisit(ctx context.Context, doctorID int64, date model.Date, bookingID int64) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusCompleted, belongsToDoctorDay(doctorID, date))
}

// CancelBooking отменяет запись пациента. Отменённая запись освобождает слот.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID int64, phone string) (*model.Booking, error) {
	phone = NormalizePhone(phone)
	return s.transition(ctx, bookingID, model.BookingStatusCancelled, func(b *model.Booking) bool {
		return b.PatientPhone == phone
	})
}

func belongsToDoctorDay(doctorID int64, date model.Date) func(*model.Booking) bool {
	return func(b *model.Booking) bool {
		return b.DoctorID == doctorID && b.Date == date
	}
}

// transition переводит запись в статус to условным UPDATE по текущему статусу.
// Если строка не обновилась, запись перечитывается: уже в статусе to - успех,
// иначе ErrInvalidTransition.
func (s *BookingService) transition(ctx context.Context, bookingID int64, to model.BookingStatus, owns func(*model.Booking) bool) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storageError("get booking", err)
	}
	if booking == nil || !owns(booking) {
		return nil, ErrBookingNotFound
	}

	if booking.Status == to {
		return booking, nil
	}
	if !booking.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, to)
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, booking.Status, to)
	if err != nil {
		return nil, storageError("update booking status", err)
	}

	if !updated {
		current, err := s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, storageError("get booking", err)
		}
		if current == nil {
			return nil, ErrBookingNotFound
		}
		if current.Status == to {
			return current, nil
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	from := booking.Status
	booking.Status = to
	booking.UpdatedAt = s.clock.Now()
	if to == model.BookingStatusCompleted {
		completedAt := booking.UpdatedAt
		booking.CompletedAt = &completedAt
	}

	s.metrics.ObserveTransition(to)
	s.logger.Info("Booking status changed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("doctor_id", booking.DoctorID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	s.publish(ctx, model.EventTypeForStatus(to), booking)

	return booking, nil
}

// PatientBookings возвращает предстоящие (по возрастанию) и прошедшие (по убыванию) записи пациента
func (s *BookingService) PatientBookings(ctx context.Context, phone string) (*model.PatientBookings, error) {
	phone = NormalizePhone(phone)
	if len(phone) < MinPhoneLength {
		return nil, &ValidationError{Field: "patient_phone", Value: phone}
	}

	bookings, err := s.bookings.ListByPatient(ctx, phone, patientHistoryLimit)
	if err != nil {
		return nil, storageError("list patient bookings", err)
	}

	today := Today(s.clock)
	result := &model.PatientBookings{
		Upcoming: []*model.Booking{},
		Past:     []*model.Booking{},
	}
	// Хранилище отдаёт записи от поздних к ранним
	for i := len(bookings) - 1; i >= 0; i-- {
		if !bookings[i].Date.Before(today) {
			result.Upcoming = append(result.Upcoming, bookings[i])
		}
	}
	for _, b := range bookings {
		if b.Date.Before(today) {
			result.Past = append(result.Past, b)
		}
	}

	return result, nil
}

// GetBooking получает запись по ID
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storageError("get booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingService) reject(outcome string, doctorID int64, err error) {
	s.metrics.ObserveBooking(outcome)
	s.logger.Info("Booking rejected",
		zap.String("outcome", outcome),
		zap.Int64("doctor_id", doctorID),
		zap.Error(err))
}

func (s *BookingService) publish(ctx context.Context, eventType model.BookingEventType, booking *model.Booking) {
	event := model.NewBookingEvent(eventType, booking, s.clock.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("type", string(eventType)),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}
}
