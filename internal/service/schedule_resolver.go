package service

import (
	"context"

	"github.com/Freeeeeet/doctor_booking/internal/model"
	"go.uber.org/zap"
)

// ScheduleResolver сводит недельный шаблон и исключения в интервалы приёма на дату
type ScheduleResolver struct {
	store  ScheduleStore
	logger *zap.Logger
}

func NewScheduleResolver(store ScheduleStore, logger *zap.Logger) *ScheduleResolver {
	return &ScheduleResolver{
		store:  store,
		logger: logger,
	}
}

// ResolveOpenRanges возвращает интервалы приёма врача на дату.
// Исключение на дату полностью заменяет недельный шаблон: закрыто - интервалов нет,
// открыто с временем - ровно один интервал, открыто без времени - интервалов нет.
func (r *ScheduleResolver) ResolveOpenRanges(ctx context.Context, doctorID int64, date model.Date) ([]model.OpenRange, error) {
	exception, err := r.store.GetException(ctx, doctorID, date)
	if err != nil {
		return nil, storageError("get schedule exception", err)
	}

	if exception != nil {
		return r.exceptionRanges(exception), nil
	}

	hours, err := r.store.GetOpenHours(ctx, doctorID, date.ISOWeekday())
	if err != nil {
		return nil, storageError("get open hours", err)
	}

	ranges := make([]model.OpenRange, 0, len(hours))
	for _, h := range hours {
		if h.StartTime >= h.EndTime {
			r.logger.Warn("Skipping empty open hours range",
				zap.Int64("doctor_id", doctorID),
				zap.Int("day_of_week", h.DayOfWeek),
				zap.Int("slot_index", h.SlotIndex))
			continue
		}
		ranges = append(ranges, model.OpenRange{Start: h.StartTime, End: h.EndTime})
	}

	return ranges, nil
}

func (r *ScheduleResolver) exceptionRanges(exception *model.Exception) []model.OpenRange {
	if exception.IsClosed || exception.StartTime == nil || exception.EndTime == nil {
		return []model.OpenRange{}
	}

	if *exception.StartTime >= *exception.EndTime {
		r.logger.Warn("Ignoring exception with empty range",
			zap.Int64("doctor_id", exception.DoctorID),
			zap.Stringer("date", exception.Date))
		return []model.OpenRange{}
	}

	return []model.OpenRange{{Start: *exception.StartTime, End: *exception.EndTime}}
}
