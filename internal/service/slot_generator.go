package service

import (
	"time"

	"github.com/Freeeeeet/doctor_booking/internal/model"
)

// SlotGranularityMinutes шаг сетки слотов в минутах
const SlotGranularityMinutes = 5

// GenerateSlots разбивает интервал приёма на слоты с шагом granularity минут.
// Слоты выровнены по сетке от полуночи и лежат в [rng.Start, rng.End).
// Для сегодняшней даты нижняя граница поднимается до now, округлённого вверх до сетки:
// слот, начинающийся ровно в now, остаётся, уже прошедшие отбрасываются.
func GenerateSlots(rng model.OpenRange, isToday bool, now time.Time, granularity int) []model.TimeOfDay {
	if granularity <= 0 {
		granularity = SlotGranularityMinutes
	}

	lower := int(rng.Start)
	if isToday {
		lower = max(lower, ceilMinute(now))
	}
	if rem := lower % granularity; rem != 0 {
		lower += granularity - rem
	}

	end := int(rng.End)
	if lower >= end {
		return []model.TimeOfDay{}
	}

	slots := make([]model.TimeOfDay, 0, (end-lower+granularity-1)/granularity)
	for t := lower; t < end; t += granularity {
		slots = append(slots, model.TimeOfDay(t))
	}
	return slots
}

// ceilMinute возвращает минуту суток момента t, округлённую вверх
func ceilMinute(t time.Time) int {
	minutes := t.Hour()*60 + t.Minute()
	if t.Second() > 0 || t.Nanosecond() > 0 {
		minutes++
	}
	return minutes
}
