package service

import (
	"context"
	"slices"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"go.uber.org/zap"
)

// AvailabilityService вычисляет свободные слоты врача на дату
type AvailabilityService struct {
	resolver    *ScheduleResolver
	bookings    BookingStore
	clock       Clock
	granularity int
	logger      *zap.Logger
}

func NewAvailabilityService(resolver *ScheduleResolver, bookings BookingStore, clock Clock, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		resolver:    resolver,
		bookings:    bookings,
		clock:       clock,
		granularity: SlotGranularityMinutes,
		logger:      logger,
	}
}

// AvailableSlots возвращает отсортированные свободные слоты врача на дату.
// Слоты всех интервалов объединяются без повторов, затем исключается время
// неотменённых записей. Результат не кэшируется.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, doctorID int64, date model.Date) ([]model.TimeOfDay, error) {
	ranges, err := s.resolver.ResolveOpenRanges(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if len(ranges) == 0 {
		return []model.TimeOfDay{}, nil
	}

	now := s.clock.Now()
	isToday := model.DateOf(now) == date

	free := make(map[model.TimeOfDay]struct{})
	for _, rng := range ranges {
		for _, slot := range GenerateSlots(rng, isToday, now, s.granularity) {
			free[slot] = struct{}{}
		}
	}
	if len(free) == 0 {
		return []model.TimeOfDay{}, nil
	}

	taken, err := s.bookings.ActiveTimes(ctx, doctorID, date)
	if err != nil {
		return nil, storageError("get booked times", err)
	}
	for _, t := range taken {
		delete(free, t)
	}

	slots := make([]model.TimeOfDay, 0, len(free))
	for slot := range free {
		slots = append(slots, slot)
	}
	slices.Sort(slots)

	s.logger.Debug("Available slots computed",
		zap.Int64("doctor_id", doctorID),
		zap.Stringer("date", date),
		zap.Int("ranges", len(ranges)),
		zap.Int("taken", len(taken)),
		zap.Int("free", len(slots)))

	return slots, nil
}

// IsAvailable проверяет, свободен ли слот в момент вызова
func (s *AvailabilityService) IsAvailable(ctx context.Context, doctorID int64, date model.Date, t model.TimeOfDay) (bool, error) {
	slots, err := s.AvailableSlots(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearch(slots, t)
	return found, nil
}
