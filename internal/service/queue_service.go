package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServiceMinutesPerPatient оценка длительности приёма одного пациента
const ServiceMinutesPerPatient = SlotGranularityMinutes

type QueueService struct {
	bookings BookingStore
	clock    Clock
	logger   *zap.Logger
}

func NewQueueService(bookings BookingStore, clock Clock, logger *zap.Logger) *QueueService {
	return &QueueService{
		bookings: bookings,
		clock:    clock,
		logger:   logger,
	}
}

// ComputeQueue возвращает состояние очереди врача на дату.
// Следующий номер - наибольший завершённый номер плюс один.
// Если передан телефон пациента и у него есть запись, считаются его позиция и ожидание.
func (s *QueueService) ComputeQueue(ctx context.Context, doctorID int64, date model.Date, phone string) (*model.QueueStatus, error) {
	watermark, waiting, err := s.bookings.QueueCounters(ctx, doctorID, date)
	if err != nil {
		return nil, storageError("get queue counters", err)
	}

	status := &model.QueueStatus{
		DoctorID:         doctorID,
		Date:             date,
		CurrentRunningNo: watermark,
		NextNo:           watermark + 1,
		TotalWaiting:     waiting,
	}

	phone = NormalizePhone(phone)
	if phone == "" {
		return status, nil
	}

	booking, err := s.bookings.FindActivePatientBooking(ctx, doctorID, date, phone)
	if err != nil {
		return nil, storageError("find patient booking", err)
	}
	if booking != nil {
		status.Position = estimatePosition(booking.SequenceNo, status.NextNo, s.clock.Now())
	}

	return status, nil
}

func estimatePosition(yourNo, nextNo int, now time.Time) *model.QueuePosition {
	ahead := max(0, yourNo-nextNo)
	eta := ahead * ServiceMinutesPerPatient
	return &model.QueuePosition{
		YourNo:      yourNo,
		PeopleAhead: ahead,
		ETAMinutes:  eta,
		ETATime:     now.Add(time.Duration(eta) * time.Minute),
	}
}

// DaySheet записи врача на дату вместе с состоянием очереди
type DaySheet struct {
	Queue    *model.QueueStatus `json:"queue"`
	Bookings []*model.Booking   `json:"bookings"`
}

// DayList возвращает записи врача на дату в порядке очереди
func (s *QueueService) DayList(ctx context.Context, doctorID int64, date model.Date) (*DaySheet, error) {
	sheet := &DaySheet{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		queue, err := s.ComputeQueue(gctx, doctorID, date, "")
		sheet.Queue = queue
		return err
	})
	g.Go(func() error {
		bookings, err := s.bookings.ListByDay(gctx, doctorID, date)
		if err != nil {
			return storageError("list day bookings", err)
		}
		sheet.Bookings = bookings
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if sheet.Bookings == nil {
		sheet.Bookings = []*model.Booking{}
	}
	return sheet, nil
}

// DayStats считает записи врача на дату по статусам
func (s *QueueService) DayStats(ctx context.Context, doctorID int64, date model.Date) (*model.DayStats, error) {
	stats, err := s.bookings.DayStats(ctx, doctorID, date)
	if err != nil {
		return nil, storageError("get day stats", err)
	}
	return stats, nil
}

// Dashboard возвращает статистику врача за вчера, сегодня и завтра
func (s *QueueService) Dashboard(ctx context.Context, doctorID int64) (*model.Dashboard, error) {
	today := Today(s.clock)
	dates := [3]model.Date{today.AddDays(-1), today, today.AddDays(1)}
	var stats [3]*model.DayStats

	g, gctx := errgroup.WithContext(ctx)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			st, err := s.DayStats(gctx, doctorID, date)
			stats[i] = st
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to build dashboard",
			zap.Int64("doctor_id", doctorID),
			zap.Error(err))
		return nil, err
	}

	return &model.Dashboard{
		DoctorID:  doctorID,
		Yesterday: *stats[0],
		Today:     *stats[1],
		Tomorrow:  *stats[2],
	}, nil
}
